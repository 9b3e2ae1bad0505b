// Copyright (c) 2020 - for information on the respective copyright owner
// see the NOTICE file and/or the repository at
// https://github.com/direct-state-transfer/fundme
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package log

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Logger is the logging interface embedded by the components of the node.
type Logger = logrus.FieldLogger

var (
	logger = newDefaultLogger()
	mu     sync.RWMutex
)

func newDefaultLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.ErrorLevel)
	l.SetFormatter(newFormatter())
	return l
}

// InitLogger sets the level and the output of the node logger.
// Supported log levels are "debug", "info" and "error".
// Logs to stdout if logFile is an empty string.
//
// Loggers derived using NewLoggerWithField before this call keep the
// previous configuration.
func InitLogger(levelStr, logFile string) error {
	l, err := NewLogger(levelStr, logFile)
	if err != nil {
		return err
	}
	mu.Lock()
	logger = l
	mu.Unlock()
	return nil
}

// NewLogger returns a logger set to the given level and log file.
func NewLogger(levelStr, logFile string) (*logrus.Logger, error) {
	l := logrus.New()

	if levelStr != "debug" && levelStr != "info" && levelStr != "error" {
		return nil, errors.New("Unsupported log level, use debug, info or error")
	}
	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	l.SetLevel(level)

	var out io.Writer = os.Stdout
	if logFile != "" {
		f, err := os.OpenFile(filepath.Clean(logFile), os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0600)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		out = f
	}
	l.SetOutput(out)
	l.SetFormatter(newFormatter())
	return l, nil
}

// NewLoggerWithField returns a logger that logs with the given field
// on every entry.
func NewLoggerWithField(key string, value interface{}) Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger.WithField(key, value)
}

// NewDiscardLogger returns a logger that discards all entries. For tests.
func NewDiscardLogger() Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newFormatter() logrus.Formatter {
	return &customTextFormatter{logrus.TextFormatter{
		FullTimestamp:          true,
		TimestampFormat:        "2006-01-02 15:04:05 Z0700",
		DisableLevelTruncation: true,
	}}
}

// customTextFormatter is defined to override default formating options for log entry.
type customTextFormatter struct {
	logrus.TextFormatter
}

// Format modifies the default logging format.
func (f *customTextFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	originalText, err := f.TextFormatter.Format(entry)
	return append([]byte("▶ "), originalText...), err
}
