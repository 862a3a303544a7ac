package cli

import (
	"os"
	"os/exec"
)

// editFilePath is a fixed well-known location; concurrent edit sessions
// would collide here, an accepted limitation.
const editFilePath = "/tmp/pls_edit.sh"

// ExternalEditor implements the CommandEditor port via $EDITOR.
type ExternalEditor struct{}

// NewExternalEditor builds an editor adapter.
func NewExternalEditor() ExternalEditor {
	return ExternalEditor{}
}

// Edit writes the command to the temp file, opens the user's editor against
// it and reads the file back.
func (ExternalEditor) Edit(command string) (string, error) {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vi"
	}
	if err := os.WriteFile(editFilePath, []byte(command), 0o600); err != nil {
		return "", err
	}

	cmd := exec.Command(editor, editFilePath)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return "", err
	}

	edited, err := os.ReadFile(editFilePath)
	if err != nil {
		return "", err
	}
	return string(edited), nil
}

// openInEditor opens an arbitrary file in the user's editor, used by the
// config command.
func openInEditor(path string) error {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vi"
	}
	cmd := exec.Command(editor, path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
