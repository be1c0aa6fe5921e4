package ports

import "os/exec"

// EditorOpener opens files, such as the config file, in an external editor
type EditorOpener interface {
	// OpenFile opens path in the user's preferred editor and waits for it
	// to exit. It uses $VISUAL or $EDITOR, falling back to common editors.
	OpenFile(path string) error

	// Command returns an exec.Cmd for opening a file in the editor.
	// This is useful for integrating with bubbletea's ExecProcess
	Command(path string) (*exec.Cmd, error)
}
