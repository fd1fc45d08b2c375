package rpc

import (
	"encoding/hex"
	"regexp"

	"github.com/gofrs/uuid"
)

const callbackNamePrefix = "_jscb_"

var reCallbackName = regexp.MustCompile(`^_jscb_[0-9a-f]{32}_(ok|err)$`)

// NewCallbackNames returns a new pair of unique callback names, to be registered by the
// webview as the `resolve` and `reject` functions of a Promise.
//
// The names only use characters that are safe to interpolate in Javascript strings.
func NewCallbackNames() (success, failure string) {
	id := uuid.Must(uuid.NewV7())
	base := callbackNamePrefix + hex.EncodeToString(id.Bytes())
	return base + "_ok", base + "_err"
}

// IsCallbackName reports whether name has the shape of the names created by NewCallbackNames.
// Use it to reject callback names that didn't originate from this package.
func IsCallbackName(name string) bool {
	return reCallbackName.MatchString(name)
}
