//go:build e2e && unix

package main

import (
	"os"
	"path/filepath"
)

// fruitCSV renders as a 4-column-wide "name" column (values up to 6 wide)
// followed by "qty" at x=7; data rows start at y=3
const fruitCSV = `name,qty
apple,3
banana,12
cherry,7
`

// CreateTestWorkspace creates an isolated working directory for the app
func (tf *TUITestFramework) CreateTestWorkspace() (string, error) {
	tmpDir := tf.t.TempDir()
	tf.workspace = tmpDir
	return tmpDir, nil
}

// WriteFixture writes a data file into the workspace and returns its path
func (tf *TUITestFramework) WriteFixture(name, content string) (string, error) {
	path := filepath.Join(tf.workspace, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", err
	}
	return path, nil
}

func (tf *TUITestFramework) startWithFruit(args ...string) {
	tf.t.Helper()
	_, err := tf.CreateTestWorkspace()
	if err != nil {
		tf.t.Fatalf("Failed to create test workspace: %v", err)
	}
	path, err := tf.WriteFixture("fruit.csv", fruitCSV)
	if err != nil {
		tf.t.Fatalf("Failed to write fixture: %v", err)
	}
	if err := tf.StartApp(append(args, path)...); err != nil {
		tf.t.Fatalf("Failed to start app: %v", err)
	}
	if !tf.Ready() {
		tf.DumpTailOnFail(tf.t, "startup", 2048)
		tf.t.Fatalf("App did not render")
	}
}
