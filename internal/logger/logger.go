package logger

import (
	"fmt"
	"sync"
	"time"
)

var (
	mu       sync.RWMutex
	notifier Notifier
)

// Notifier forwards log lines to an external channel. Implementations must
// be safe for concurrent use.
type Notifier interface {
	SendMessage(text string) error
}

// Init attaches a notifier. Logging works without one; lines then go to
// stdout only.
func Init(n Notifier) {
	mu.Lock()
	defer mu.Unlock()
	notifier = n
}

func Info(message string) {
	sendLog("INFO", message)
}

func Error(message string) {
	sendLog("ERROR", message)
}

func Debug(message string) {
	sendLog("DEBUG", message)
}

func Success(message string) {
	sendLog("SUCCESS", message)
}

func sendLog(prefix, message string) {
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	logMessage := fmt.Sprintf("[%s] %s\n%s", timestamp, prefix, message)
	fmt.Println(logMessage)

	mu.RLock()
	n := notifier
	mu.RUnlock()
	if n == nil {
		return
	}

	go func() {
		if err := n.SendMessage(logMessage); err != nil {
			fmt.Printf("Failed to forward log to notifier: %v\nLog was: %s\n", err, logMessage)
		}
	}()
}

func LogWithErr(message string, err error) {
	if err == nil {
		Info(message)
		return
	}
	Error(fmt.Sprintf("%s\nError: %v", message, err))
}
