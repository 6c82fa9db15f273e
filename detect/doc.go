// Package detect classifies OpenPGP data in a byte stream without
// parsing it. A Detector is fed arbitrary chunks and recognizes both
// ASCII-armored blocks, by their BEGIN and END marker lines, and binary
// OpenPGP data, by the leading packet tag. The classification and the
// block's byte offsets are available as soon as they are known, so a
// caller can pipe a mail body through the detector and decide afterwards
// whether it carried a key, a signature or an encrypted message.
//
// Detection is independent of chunking: feeding the stream one byte at a
// time yields the same result as feeding it whole.
package detect
