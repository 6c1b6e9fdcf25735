package logging

import "github.com/sirupsen/logrus"

// BaseFields tags a log line with the command action and a path.
func BaseFields(action, path string) logrus.Fields {
	return logrus.Fields{
		"action": action,
		"path":   path,
	}
}
