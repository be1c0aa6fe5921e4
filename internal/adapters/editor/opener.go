package editor

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// fallbackEditors are tried in order when neither $VISUAL nor $EDITOR is set
var fallbackEditors = []string{"nvim", "vim", "vi", "nano"}

// Opener implements ports.EditorOpener
type Opener struct {
	lookPath func(string) (string, error)
}

// NewOpener creates a new editor opener
func NewOpener() *Opener {
	return &Opener{lookPath: exec.LookPath}
}

// OpenFile opens a file in the user's preferred editor
func (o *Opener) OpenFile(path string) error {
	cmd, err := o.Command(path)
	if err != nil {
		return err
	}
	return cmd.Run()
}

// Command returns an exec.Cmd for opening a file in the editor.
// Editor variables may carry arguments, as in EDITOR="code --wait".
func (o *Opener) Command(path string) (*exec.Cmd, error) {
	argv := o.editorArgs()
	if len(argv) == 0 {
		return nil, fmt.Errorf("no editor found: set $EDITOR environment variable")
	}

	cmd := exec.Command(argv[0], append(argv[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd, nil
}

// editorArgs returns the editor command line to use
func (o *Opener) editorArgs() []string {
	for _, env := range []string{"VISUAL", "EDITOR"} {
		if fields := strings.Fields(os.Getenv(env)); len(fields) > 0 {
			return fields
		}
	}

	for _, editor := range fallbackEditors {
		if path, err := o.lookPath(editor); err == nil {
			return []string{path}
		}
	}

	return nil
}
