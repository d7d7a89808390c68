package artifact

import (
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
)

// Failure-log filenames, written next to the artifacts of the failed job so
// the orchestration layer surfaces them alongside the run's outputs.
const (
	TrainErrorLog      = "train_error.log"
	EvaluationErrorLog = "evaluation_error.log"
	ModelNotFoundLog   = "model_not_found.log"
)

// WriteFailureLog persists the failure detail of a job into dir under the
// given filename. Best effort: writing the log must never mask the original
// error, so problems are only warned about.
func WriteFailureLog(dir, name string, runErr error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.WithError(err).WithField("dir", dir).Warn("cannot create directory for failure log")
		return
	}
	path := filepath.Join(dir, name)
	body := fmt.Sprintf("%+v\n", runErr)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		log.WithError(err).WithField("path", path).Warn("cannot write failure log")
	}
}
