package v2

import "encoding/binary"

func encodeFrameHeader(h frameHeader) [frameHeaderSize]byte {
	var buf [frameHeaderSize]byte
	buf[0] = h.CodecID
	buf[1] = h.CodecVersion
	binary.BigEndian.PutUint16(buf[2:4], h.GraphID)
	binary.BigEndian.PutUint32(buf[4:8], h.UncompressedLen)
	binary.BigEndian.PutUint32(buf[8:12], h.CompressedLen)
	binary.BigEndian.PutUint32(buf[12:16], h.CRC32C)
	return buf
}

func decodeFrameHeader(buf []byte) frameHeader {
	return frameHeader{
		CodecID:         buf[0],
		CodecVersion:    buf[1],
		GraphID:         binary.BigEndian.Uint16(buf[2:4]),
		UncompressedLen: binary.BigEndian.Uint32(buf[4:8]),
		CompressedLen:   binary.BigEndian.Uint32(buf[8:12]),
		CRC32C:          binary.BigEndian.Uint32(buf[12:16]),
	}
}

// encodeTocEntry serializes e into the 32-byte on-disk layout:
// offset(8) uncomp_len(4) comp_len(4) codec(1) graph(2) lod(1) tier(1) seq(8) reserved(3).
func encodeTocEntry(e TocEntry) [tocEntrySize]byte {
	var buf [tocEntrySize]byte
	binary.BigEndian.PutUint64(buf[0:8], e.Offset)
	binary.BigEndian.PutUint32(buf[8:12], e.UncompressedLen)
	binary.BigEndian.PutUint32(buf[12:16], e.CompressedLen)
	buf[16] = e.CodecID
	binary.BigEndian.PutUint16(buf[17:19], e.GraphID)
	buf[19] = e.LOD
	buf[20] = e.Tier
	binary.BigEndian.PutUint64(buf[21:29], e.Seq)
	// buf[29:32] reserved, left zero.
	return buf
}

func decodeTocEntry(buf []byte) TocEntry {
	return TocEntry{
		Offset:          binary.BigEndian.Uint64(buf[0:8]),
		UncompressedLen: binary.BigEndian.Uint32(buf[8:12]),
		CompressedLen:   binary.BigEndian.Uint32(buf[12:16]),
		CodecID:         buf[16],
		GraphID:         binary.BigEndian.Uint16(buf[17:19]),
		LOD:             buf[19],
		Tier:            buf[20],
		Seq:             binary.BigEndian.Uint64(buf[21:29]),
	}
}

// footer is the 32-byte trailer written at every checkpoint:
// magic(8) toc_offset(8) toc_len(8) entry_count(4) flags_copy(1) reserved(3).
type footer struct {
	TocOffset  uint64
	TocLen     uint64
	EntryCount uint32
	FlagsCopy  byte
}

func encodeFooter(f footer) [footerSize]byte {
	var buf [footerSize]byte
	copy(buf[0:8], FooterMagic[:])
	binary.BigEndian.PutUint64(buf[8:16], f.TocOffset)
	binary.BigEndian.PutUint64(buf[16:24], f.TocLen)
	binary.BigEndian.PutUint32(buf[24:28], f.EntryCount)
	buf[28] = f.FlagsCopy
	return buf
}

func decodeFooter(buf []byte) (footer, bool) {
	var f footer
	for i := 0; i < 8; i++ {
		if buf[i] != FooterMagic[i] {
			return f, false
		}
	}
	f.TocOffset = binary.BigEndian.Uint64(buf[8:16])
	f.TocLen = binary.BigEndian.Uint64(buf[16:24])
	f.EntryCount = binary.BigEndian.Uint32(buf[24:28])
	f.FlagsCopy = buf[28]
	return f, true
}
