package sbwt

import "errors"

// ErrStreamingUnsupported is returned by StreamingSearch when the index
// was built without suffix-group marks.
var ErrStreamingUnsupported = errors.New("sbwt: index was not built with streaming query support")

// ErrCorruptIndex is returned when a structural invariant of the index is
// violated, such as the search range still spanning more than one column
// after exactly k steps.
var ErrCorruptIndex = errors.New("sbwt: corrupt index: node_left != node_right after k steps")

// ErrInvalidIndexFile means the stream being loaded is not a recognizable
// serialized index.
var ErrInvalidIndexFile = errors.New("sbwt: invalid index file")
