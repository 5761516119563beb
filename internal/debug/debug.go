package debug

import (
	"fmt"
	"log"
	"time"
)

// Header prints a section header if debugging is enabled
func Header(enabled bool, section string) {
	if enabled {
		log.Printf("=== %s START ===", section)
	}
}

// Footer prints a section footer if debugging is enabled
func Footer(enabled bool, section string) {
	if enabled {
		log.Printf("=== %s END ===", section)
	}
}

// Output prints a timestamped debug line if debugging is enabled
func Output(enabled bool, format string, args ...interface{}) {
	if enabled {
		log.Printf("[%s] %s", time.Now().Format("15:04:05.000"), fmt.Sprintf(format, args...))
	}
}

// Timing logs the duration of an operation; call the returned func when done.
func Timing(enabled bool, operation string) func() {
	if !enabled {
		return func() {}
	}

	start := time.Now()
	Output(enabled, "Starting: %s", operation)
	return func() {
		Output(enabled, "Completed: %s (took %v)", operation, time.Since(start))
	}
}
