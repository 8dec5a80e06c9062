package service_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lanternsec/keygate/pkg/cryptox"
)

func TestMain(m *testing.M) {
	// Password hashing mixes in a file-based pepper; point it at a
	// throwaway location so tests never touch a real one.
	dir, err := os.MkdirTemp("", "keygate-service-test")
	if err != nil {
		panic(err)
	}
	cryptox.SetPepperPath(filepath.Join(dir, "pepper"))

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}
