package badger

import (
	"fmt"

	"github.com/clefworks/scorebase/core"
)

// Key prefixes for different data types
const (
	itemPrefix       = "librec"
	itemSigPrefix    = "libsig"
	checkpointPrefix = "chkpt"
)

// makeItemKey generates a key for a library item by ID.
func makeItemKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", itemPrefix, id))
}

// makeSignatureKey generates a key for the content signature index.
// The value stored under it is the marshaled item ID.
func makeSignatureKey(signature string) []byte {
	return []byte(itemSigPrefix + ":" + signature)
}

// makeCheckpointKey generates a key for import checkpoints.
func makeCheckpointKey(stage string) []byte {
	return []byte(checkpointPrefix + ":" + stage)
}
