// SPDX-License-Identifier: GPL-3.0-or-later
package log

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/sirupsen/logrus"
)

func NewPrefixLogger(prefix string) *PrefixLogger {
	stringPrefix := fmt.Sprintf("%s:\t", prefix)

	formatter := &logrus.TextFormatter{}
	formatter.FullTimestamp = true
	formatter.TimestampFormat = "15:04:05"
	formatter.DisableColors = strings.Contains(runtime.GOOS, "windows")
	return &PrefixLogger{
		formatter,
		[]byte(stringPrefix),
	}
}

type PrefixLogger struct {
	formatter logrus.Formatter
	prefix    []byte
}

func (f *PrefixLogger) Format(entry *logrus.Entry) ([]byte, error) {
	text, err := f.formatter.Format(entry)
	if err != nil {
		return nil, err
	}
	return append(f.prefix, text...), nil
}

const (
	LOG_MAIN      = "MA"
	LOG_RESPONDER = "RS"
	LOG_GATEWAY   = "GW"
	LOG_IMAP      = "IM"
	LOG_SMTP      = "SM"
	LOG_REPLY     = "RE"
	LOG_JOURNAL   = "JO"
	LOG_SPAM      = "SP"
)

var prefixes = []string{
	LOG_MAIN,
	LOG_RESPONDER,
	LOG_GATEWAY,
	LOG_IMAP,
	LOG_SMTP,
	LOG_REPLY,
	LOG_JOURNAL,
	LOG_SPAM,
}

func getLevel(loglevel string) logrus.Level {
	switch strings.ToLower(loglevel) {
	case "debug":
		return logrus.DebugLevel
	case "warn":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	case "panic":
		return logrus.PanicLevel
	case "fatal":
		return logrus.FatalLevel
	}

	// Info is default
	return logrus.InfoLevel
}

// Loggers holds one prefixed logger per component. It is created once in main and
// handed to every component constructor.
type Loggers struct {
	loggers map[string]*logrus.Logger
}

func NewLoggers(loglevel string) *Loggers {
	l := &Loggers{loggers: make(map[string]*logrus.Logger)}
	for _, prefix := range prefixes {
		logger := logrus.New()
		logger.Level = getLevel(loglevel)
		logger.Formatter = NewPrefixLogger(prefix)
		l.loggers[prefix] = logger
	}

	return l
}

// Discard returns loggers that write nowhere, for tests.
func Discard() *Loggers {
	l := NewLoggers("error")
	l.SetOutput(io.Discard)
	return l
}

func (l *Loggers) SetLogLevel(loglevel string) {
	for _, v := range l.loggers {
		v.Level = getLevel(loglevel)
	}
}

func (l *Loggers) SetOutput(w io.Writer) {
	for _, v := range l.loggers {
		v.SetOutput(w)
	}
}

func (l *Loggers) Logger(logger string) *logrus.Logger {
	lg, ok := l.loggers[logger]
	if !ok {
		panic("Logger " + logger + " unknown")
	}

	return lg
}
