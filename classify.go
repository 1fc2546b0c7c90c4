// Go MySQL Driver - A MySQL-Driver for Go's database/sql package
//
// Copyright 2012 Julien Schmidt. All rights reserved.
// http://www.julienschmidt.com
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at http://mozilla.org/MPL/2.0/.

package rowset

// serverMoreResultsExists is the SERVER_MORE_RESULTS_EXISTS bit of the
// status flags carried in an EOF packet.
const serverMoreResultsExists = 0x0008

// isEOFPacket reports whether data is shaped like an EOF packet: the
// 0xFE header byte with a total length under 9 bytes. A length-encoded
// string that happens to start with 0xFE (the length-prefix form used for
// 8-byte lengths) is always at least 9 bytes long for any row data that
// matters here, so this check cannot misclassify row payload as EOF.
func isEOFPacket(data []byte) bool {
	return len(data) > 0 && data[0] == 0xfe && len(data) < 9
}

// eofInfo is the parsed contents of an EOF packet: warning count and
// whether more result sets follow.
type eofInfo struct {
	WarningCount uint16
	HasNext      bool
}

// classifyEOF checks whether data is an EOF packet and, if so, parses it.
// It returns ok=false (and a zero eofInfo) for any other packet shape,
// including row data and ERR packets.
func classifyEOF(data []byte) (info eofInfo, ok bool) {
	if !isEOFPacket(data) {
		return eofInfo{}, false
	}

	rest := data[1:]
	if len(rest) < 4 {
		return eofInfo{}, true
	}

	info.WarningCount = uint16(rest[0]) | uint16(rest[1])<<8
	status := uint16(rest[2]) | uint16(rest[3])<<8
	info.HasNext = status&serverMoreResultsExists != 0
	return info, true
}
