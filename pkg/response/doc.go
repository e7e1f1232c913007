// Package response builds HTTP responses as values and writes them out.
//
// A Response carries a status line, an ordered header map with an attached
// list of cookies, and a body. Three flavors share the same type:
//
//   - plain: the body is the raw content string (New);
//   - JSON: the body is the JSON encoding of a data map, computed when the
//     response is sent (NewJSON);
//   - redirect: the body is empty and the destination lives only in the
//     Location header (NewRedirect).
//
// # Defaults
//
// Every response carries these headers, put after any headers passed as
// options:
//
//	Content-Type: text/html; charset=UTF-8
//	Cache-Control: no-cache, must-revalidate
//	Expires: <construction time in GMT>
//
// A default overwrites an option header of the same name, which keeps its
// position. Use Headers().Put after construction to change a default.
// Header names are case-insensitive and emitted in canonical form.
//
// Render refuses informational 1xx statuses; Send writes them as is.
//
// # Sending
//
// Send writes the message in wire form to any io.Writer:
//
//	HTTP/1.1 200 OK\r\n
//	Content-Type: text/html; charset=UTF-8\r\n
//	...
//	Set-Cookie: sid=abc; path=/; httponly; samesite=lax\r\n
//	\r\n
//	<body>
//
// Render adapts the same contract to net/http handlers.
//
// # Usage
//
//	resp, err := response.NewJSON(map[string]any{"ok": true}, http.StatusCreated)
//	if err != nil {
//		return err
//	}
//	resp.Headers().SetCookie(cookie.MustNew("seen", cookie.WithValue("1")))
//	return resp.Render(w, r)
package response
