package logging

import (
	"fmt"
	"os"
	"sync"
)

// SuppressStdStreams points os.Stdout and os.Stderr at the null device.
// The returned func puts the original streams back; it is safe to call twice.
func SuppressStdStreams() (func() error, error) {
	devNull, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", os.DevNull, err)
	}

	stdout, stderr := os.Stdout, os.Stderr
	os.Stdout, os.Stderr = devNull, devNull

	var once sync.Once
	return func() error {
		var err error
		once.Do(func() {
			os.Stdout, os.Stderr = stdout, stderr
			err = devNull.Close()
		})
		return err
	}, nil
}
