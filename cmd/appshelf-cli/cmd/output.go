package cmd

import (
	"fmt"
	"io"
	"strings"

	"appshelf/internal/domain"
	"appshelf/internal/vdf"
)

func printApp(w io.Writer, app domain.App) {
	fmt.Fprintf(w, "%d\t[%s]\t%s\t%s\n",
		app.ID, strings.ToLower(app.Type.String()), app.DisplayName(), app.Platforms)
}

func printAppDetail(w io.Writer, app domain.App) {
	name := "(none)"
	if app.HasName() {
		name = *app.Name
	}
	fmt.Fprintf(w, "id:        %d\n", app.ID)
	fmt.Fprintf(w, "name:      %s\n", name)
	fmt.Fprintf(w, "type:      %s\n", app.Type)
	fmt.Fprintf(w, "platforms: %s\n", app.Platforms)
	fmt.Fprintf(w, "store:     %s\n", app.StoreURI())
}

// printTree writes node and its descendants, one per line, indented by
// depth. Leaves show their value after the key.
func printTree(w io.Writer, node *vdf.Node) {
	node.Walk(func(n *vdf.Node, depth int) {
		indent := strings.Repeat("  ", depth)
		if n.Kind == vdf.KindObject {
			fmt.Fprintf(w, "%s%s\n", indent, n.Name)
			return
		}
		fmt.Fprintf(w, "%s%s = %q\n", indent, n.Name, n.Text())
	})
}
