// Package preview renders font-coded listings as ANSI text for a terminal.
//
// It consumes the same token stream as the HTML writer, through
// seehtml.Decode, and maps each style element to an SGR prefix taken from a
// Theme. Lines can be hard wrapped or truncated to a width.
//
// Example:
//
//	err := preview.Render(preview.RenderRequest{
//		Reader: f,
//		Writer: os.Stdout,
//		Width:  100,
//		Theme:  preview.DefaultTheme(),
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
package preview
