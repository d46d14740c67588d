package cli

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNonBlockingReader_ReadLine(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{name: "menu choice", input: "10\n", want: "10"},
		{name: "surrounding blanks trimmed", input: "  rent \t\n", want: "rent"},
		{name: "windows line ending", input: "-50\r\n", want: "-50"},
		{name: "blank line", input: "\n", want: ""},
		{name: "final line without newline", input: "  7", want: "7"},
		{name: "nothing left", input: "", wantErr: io.EOF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewNonBlockingReader(strings.NewReader(tt.input)).ReadLine(context.Background())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNonBlockingReader_SequentialPrompts(t *testing.T) {
	r := NewNonBlockingReader(strings.NewReader("5\n100\nrent\n20230101\njan rent\n"))
	ctx := context.Background()

	var answers []string
	for {
		line, err := r.ReadLine(ctx)
		if err != nil {
			assert.ErrorIs(t, err, io.EOF)
			break
		}
		answers = append(answers, line)
	}

	assert.Equal(t, []string{"5", "100", "rent", "20230101", "jan rent"}, answers)
}

func TestNonBlockingReader_PartialLineThenEOF(t *testing.T) {
	r := NewNonBlockingReader(strings.NewReader("0"))
	ctx := context.Background()

	line, err := r.ReadLine(ctx)
	require.NoError(t, err)
	assert.Equal(t, "0", line)

	_, err = r.ReadLine(ctx)
	assert.ErrorIs(t, err, io.EOF)
}

func TestNonBlockingReader_Cancelled(t *testing.T) {
	t.Run("before reading", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := NewNonBlockingReader(strings.NewReader("1\n")).ReadLine(ctx)
		assert.ErrorIs(t, err, ErrInputCancelled)
	})

	t.Run("while waiting for input", func(t *testing.T) {
		pr, pw := io.Pipe()
		t.Cleanup(func() {
			_ = pw.Close()
			_ = pr.Close()
		})

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		_, err := NewNonBlockingReader(pr).ReadLine(ctx)
		assert.ErrorIs(t, err, ErrInputCancelled)
	})
}

func TestNewNonBlockingReader_NilPanics(t *testing.T) {
	assert.Panics(t, func() { NewNonBlockingReader(nil) })
}
