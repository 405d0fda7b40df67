package testutil

import (
	"fmt"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCaptureStdout(t *testing.T) {
	out := CaptureStdout(t, func() {
		fmt.Print("привет")
	})
	assert.Equal(t, "привет", out)
}

func TestCaptureStderr(t *testing.T) {
	out := CaptureStderr(t, func() {
		fmt.Fprint(os.Stderr, "warning")
	})
	assert.Equal(t, "warning", out)
}

func TestWithStdin(t *testing.T) {
	var got []byte
	WithStdin(t, `{"request":{}}`, func() {
		var err error
		got, err = io.ReadAll(os.Stdin)
		require.NoError(t, err)
	})
	assert.Equal(t, `{"request":{}}`, string(got))
}
