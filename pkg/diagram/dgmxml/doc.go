// Package dgmxml reads and writes the XML form of a diagram-data
// sub-document.
//
// Decoding is namespace-tolerant: elements and attributes are matched by
// local name, and everything the structural model does not interpret
// (property-set children, shape content, text formatting) is captured
// verbatim and written back unchanged. Encoding is deterministic: the same
// model always serializes to the same bytes.
//
// [Part] wraps a decoded model together with the original XML declaration
// and line-ending convention, so a round trip through an untouched part
// does not disturb the host's formatting expectations.
package dgmxml
