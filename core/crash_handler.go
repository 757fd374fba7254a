package core

import (
	"fmt"
	"os"
	"runtime/debug"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"
)

var crashScreen atomic.Pointer[tcell.Screen]

// SetCrashScreen registers the screen to finalize before printing a crash report
func SetCrashScreen(s tcell.Screen) {
	if s == nil {
		crashScreen.Store(nil)
		return
	}
	crashScreen.Store(&s)
}

// HandleCrash is the unified panic handler that restores the terminal and prints the stack trace
func HandleCrash(r any) {
	if r == nil {
		return
	}

	if s := crashScreen.Load(); s != nil {
		(*s).Fini()
	}

	fmt.Fprintf(os.Stderr, "\n\x1b[31mKERNEL-LENS CRASHED: %v\x1b[0m\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())

	os.Exit(1)
}

// Recover is deferred at the top of goroutines owning terminal state
func Recover() {
	if r := recover(); r != nil {
		HandleCrash(r)
	}
}
