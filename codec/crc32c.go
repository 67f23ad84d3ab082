package codec

import "hash/crc32"

// crc32cTable is the Castagnoli polynomial table, the industry-standard
// "CRC32C" variant (used by iSCSI, ext4, and most modern container
// formats). No third-party CRC32C implementation appears anywhere in the
// retrieval pack; hash/crc32's built-in Castagnoli table is the universal
// idiomatic choice (klauspost/compress itself falls back to the same
// table when no SSE4.2 path is available), so this one concern is carried
// on the standard library rather than an external dependency.
var crc32cTable = crc32.MakeTable(crc32.Castagnoli)

// CRC32C returns the CRC32C checksum of data.
func CRC32C(data []byte) uint32 {
	return crc32.Checksum(data, crc32cTable)
}
