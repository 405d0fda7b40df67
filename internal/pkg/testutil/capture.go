// Package testutil содержит общие утилиты для тестирования.
package testutil

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

// CaptureStdout выполняет fn, перехватывая stdout, и возвращает вывод.
func CaptureStdout(t *testing.T, fn func()) string {
	t.Helper()
	return capture(t, &os.Stdout, fn)
}

// CaptureStderr выполняет fn, перехватывая stderr, и возвращает вывод.
func CaptureStderr(t *testing.T, fn func()) string {
	t.Helper()
	return capture(t, &os.Stderr, fn)
}

// WithStdin подменяет stdin содержимым input на время выполнения fn.
func WithStdin(t *testing.T, input string, fn func()) {
	t.Helper()
	r, w, err := os.Pipe()
	require.NoError(t, err, "не удалось создать pipe для stdin")

	go func() {
		_, _ = w.WriteString(input) //nolint:errcheck // test helper pipe write
		_ = w.Close()               //nolint:errcheck // test helper pipe close
	}()

	old := os.Stdin
	os.Stdin = r
	defer func() {
		os.Stdin = old
		_ = r.Close() //nolint:errcheck // test helper pipe close
	}()

	fn()
}

func capture(t *testing.T, target **os.File, fn func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	require.NoError(t, err, "не удалось создать pipe")

	old := *target
	*target = w
	defer func() { *target = old }()

	done := make(chan []byte)
	go func() {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(r) //nolint:errcheck // test helper pipe read
		done <- buf.Bytes()
	}()

	fn()

	_ = w.Close() //nolint:errcheck // test helper pipe close
	return string(<-done)
}
