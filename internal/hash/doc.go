// Package hash provides the checksum used to protect encoded graph records.
//
// All checksums use CRC32-Castagnoli (CRC32C), which Go's hash/crc32
// accelerates in hardware on x86 (SSE4.2) and ARM64 (CRC extension).
//
//	checksum := hash.CRC32C(data)
//
//	h := hash.NewCRC32C()
//	h.Write(chunk1)
//	h.Write(chunk2)
//	checksum := h.Sum32()
package hash
