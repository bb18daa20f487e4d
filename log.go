package fatmod

import (
	"io"

	"github.com/sirupsen/logrus"
)

// warningFormatter renders warn level entries as plain "WARNING: " lines
// so they mix with the listing output without timestamps or level tags.
type warningFormatter struct{}

func (f *warningFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	if entry.Level == logrus.WarnLevel {
		return []byte("WARNING: " + entry.Message + "\n"), nil
	}
	return append([]byte(entry.Message), '\n'), nil
}

// NewLogger returns the logger used for volume warnings, writing plain
// lines to out.
func NewLogger(out io.Writer) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(out)
	log.SetFormatter(&warningFormatter{})
	return log
}
