// Package encoders models the conversion backends exposed by the media
// tool: probing the available encoder list, classifying each entry by
// vendor, and selecting a default against the detected hardware and the
// user's GPU preference.
package encoders
