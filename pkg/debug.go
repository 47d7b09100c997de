package slang

import (
	"fmt"
	"io"
	"os"
)

// DebugStream is the process-wide debug sink. When disabled every write is a
// no-op; when enabled writes are forwarded to the underlying writer. There
// are no levels and no formatting beyond what the caller supplies.
type DebugStream struct {
	Enabled bool
	Out     io.Writer
}

// Debug is the sink the front-end writes to. The driver flips Enabled when
// invoked with -v.
var Debug = &DebugStream{Out: os.Stdout}

func (d *DebugStream) Printf(format string, args ...interface{}) {
	if !d.Enabled {
		return
	}

	fmt.Fprintf(d.Out, format, args...)
}

func (d *DebugStream) Println(args ...interface{}) {
	if !d.Enabled {
		return
	}

	fmt.Fprintln(d.Out, args...)
}
