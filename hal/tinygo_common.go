//go:build tinygo && baremetal

package hal

import (
	"fmt"
	"machine"
	"strings"
	"time"
)

type tinyGoDisplay struct {
	fb Framebuffer
}

func (d tinyGoDisplay) Framebuffer() Framebuffer { return d.fb }

type tinyGoTime struct {
	ch  chan uint64
	seq uint64
}

func newTinyGoTime() *tinyGoTime {
	t := &tinyGoTime{ch: make(chan uint64, 16)}
	go func() {
		ticker := time.NewTicker(1 * time.Millisecond)
		defer ticker.Stop()
		for range ticker.C {
			t.seq++
			select {
			case t.ch <- t.seq:
			default:
			}
		}
	}()
	return t
}

func (t *tinyGoTime) Ticks() <-chan uint64 { return t.ch }

// uartLogger writes "LEVEL msg key=value ..." lines to a UART.
type uartLogger struct {
	uart *machine.UART
}

func newUARTLogger() *uartLogger {
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       machine.GP0,
		RX:       machine.GP1,
	})
	return &uartLogger{uart: uart}
}

func (l *uartLogger) Debug(msg interface{}, keyvals ...interface{}) { l.line("DEBU", msg, keyvals) }
func (l *uartLogger) Info(msg interface{}, keyvals ...interface{})  { l.line("INFO", msg, keyvals) }
func (l *uartLogger) Warn(msg interface{}, keyvals ...interface{})  { l.line("WARN", msg, keyvals) }
func (l *uartLogger) Error(msg interface{}, keyvals ...interface{}) { l.line("ERRO", msg, keyvals) }

func (l *uartLogger) line(level string, msg interface{}, keyvals []interface{}) {
	var b strings.Builder
	b.WriteString(level)
	b.WriteByte(' ')
	fmt.Fprint(&b, msg)
	for i := 0; i < len(keyvals); i += 2 {
		b.WriteByte(' ')
		fmt.Fprint(&b, keyvals[i])
		b.WriteByte('=')
		if i+1 < len(keyvals) {
			fmt.Fprint(&b, keyvals[i+1])
		} else {
			b.WriteString("MISSING")
		}
	}
	s := b.String()
	for i := 0; i < len(s); i++ {
		l.uart.WriteByte(s[i])
	}
	l.uart.WriteByte('\r')
	l.uart.WriteByte('\n')
}

type tinyGoHAL struct {
	logger Logger
	fb     Framebuffer
	t      *tinyGoTime
}

func (h *tinyGoHAL) Logger() Logger   { return h.logger }
func (h *tinyGoHAL) Display() Display { return tinyGoDisplay{fb: h.fb} }
func (h *tinyGoHAL) Time() Time       { return h.t }

// Audio is not wired on TinyGo targets.
func (h *tinyGoHAL) Audio() Audio { return nil }

func newTinyGoHAL(opts Options, fb Framebuffer) *tinyGoHAL {
	var logger Logger = opts.Logger
	if logger == nil {
		logger = newUARTLogger()
	}
	return &tinyGoHAL{logger: logger, fb: fb, t: newTinyGoTime()}
}
