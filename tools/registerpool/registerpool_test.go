package registerpool

import (
	"os"
	"testing"
	"time"
)

func Test_RegisterPools(t *testing.T) {
	workSpace := os.Getenv("WAYFINDER_WORKSPACE")
	if workSpace == "" {
		t.Skip("WAYFINDER_WORKSPACE is not set")
	}
	RegisterPools(workSpace)
	time.Sleep(time.Second * 10)
}
