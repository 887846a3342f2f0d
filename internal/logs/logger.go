package logs

import (
	"encoding/json"
	"io"
	"log"
	"os"
	"sync"
	"time"
)

var (
	mu     sync.Mutex
	logger = log.New(os.Stdout, "", 0)
)

// SetOutput redirige les logs (utilisé par les tests)
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logger.SetOutput(w)
}

func LogJSON(level, message string, fields map[string]interface{}) {
	logEntry := map[string]interface{}{
		"severity": level, // "DEBUG", "INFO", "WARN", "ERROR" & "FATAL"
		"message":  message,
		"time":     time.Now().Format(time.RFC3339),
	}
	for k, v := range fields {
		if err, ok := v.(error); ok {
			v = err.Error()
		}
		logEntry[k] = v
	}
	jsonLog, err := json.Marshal(logEntry)
	if err != nil {
		jsonLog, _ = json.Marshal(map[string]interface{}{
			"severity": "ERROR",
			"message":  "unable to encode log entry",
			"original": message,
			"time":     logEntry["time"],
		})
	}

	mu.Lock()
	logger.Println(string(jsonLog))
	mu.Unlock()

	if level == "FATAL" {
		os.Exit(1)
	}
}
