package guard

import (
	"os"
	"sync"
)

var once sync.Once

func init() {
	once.Do(func() {
		if os.Getenv("DOCUFLOW_TEST_MODE") == "" {
			_ = os.Setenv("DOCUFLOW_TEST_MODE", "1")
		}
	})
}
