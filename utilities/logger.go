package utilities

import (
	"log"
	"os"
	"time"
)

var (
	InfoLogger  *log.Logger
	ErrorLogger *log.Logger
	DebugLogger *log.Logger
)

// InitLogger initializes the leveled loggers
func InitLogger() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds | log.Lshortfile)

	InfoLogger = log.New(os.Stdout, "\033[32m[INFO]\033[0m ", log.Ldate|log.Ltime|log.Lmicroseconds|log.Lshortfile)
	ErrorLogger = log.New(os.Stderr, "\033[31m[ERROR]\033[0m ", log.Ldate|log.Ltime|log.Lmicroseconds|log.Lshortfile)
	DebugLogger = log.New(os.Stdout, "\033[36m[DEBUG]\033[0m ", log.Ldate|log.Ltime|log.Lmicroseconds|log.Lshortfile)
}

// LogRequest records information about an HTTP request
func LogRequest(method, path, remoteAddr string, status int, duration time.Duration) {
	InfoLogger.Printf("%s %s %s %d %v", method, path, remoteAddr, status, duration)
}

// LogError records an error together with where it happened
func LogError(err error, context string) {
	ErrorLogger.Printf("%s: %v", context, err)
}

// LogDebug records debug information
func LogDebug(format string, v ...interface{}) {
	DebugLogger.Printf(format, v...)
}

// LogInfo records general information
func LogInfo(format string, v ...interface{}) {
	InfoLogger.Printf(format, v...)
}
