package lsp

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// maxMessageSize bounds a single framed message.
const maxMessageSize = 16 << 20

// ReceiveInput creates a scanner that decodes LSP messages from an input stream.
func ReceiveInput(input io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(input)
	scanner.Buffer(make([]byte, 0, 64*1024), maxMessageSize)
	scanner.Split(decode)

	return scanner
}

// Encode prefixes data with its Content-Length header.
func Encode(dataContent []byte) []byte {
	length := strconv.Itoa(len(dataContent))
	dataHeader := []byte(ContentLengthHeader + ": " + length + HeaderDelimiter)
	dataHeader = append(dataHeader, dataContent...)

	return dataHeader
}

var errMalformedHeader = errors.New("malformed header")

// decode is a bufio.SplitFunc that parses LSP messages.
func decode(data []byte, atEOF bool) (advance int, token []byte, err error) {
	indexStartData := bytes.Index(data, []byte(HeaderDelimiter))
	if indexStartData == -1 {
		if atEOF && len(bytes.TrimSpace(data)) > 0 {
			return 0, nil, io.ErrUnexpectedEOF
		}

		return 0, nil, nil
	}

	contentLength, err := getHeaderContentLength(data[:indexStartData])
	if err != nil {
		return 0, nil, err
	}

	indexStartData += len(HeaderDelimiter)
	indexEndData := indexStartData + contentLength

	if len(data) < indexEndData {
		if atEOF {
			return 0, nil, io.ErrUnexpectedEOF
		}

		return 0, nil, nil
	}

	return indexEndData, data[indexStartData:indexEndData], nil
}

// getHeaderContentLength extracts the Content-Length value from LSP headers.
func getHeaderContentLength(data []byte) (int, error) {
	indexHeader := bytes.LastIndex(data, []byte(ContentLengthHeader))
	if indexHeader == -1 {
		return -1, fmt.Errorf("%w: no %s", errMalformedHeader, ContentLengthHeader)
	}

	indexLineSeparator := bytes.Index(data[indexHeader:], []byte(LineDelimiter))
	if indexLineSeparator >= 0 {
		indexLineSeparator += indexHeader
	} else {
		indexLineSeparator = len(data)
	}

	indexKeyValueSeparator := bytes.Index(data[indexHeader:indexLineSeparator], []byte(":"))
	if indexKeyValueSeparator == -1 {
		return -1, fmt.Errorf("%w: missing ':'", errMalformedHeader)
	}

	indexKeyValueSeparator += indexHeader

	contentLengthString := bytes.TrimSpace(data[indexKeyValueSeparator+1 : indexLineSeparator])

	contentLength, err := strconv.Atoi(string(contentLengthString))
	if err != nil {
		return -1, fmt.Errorf("%w: length is not an integer", errMalformedHeader)
	}

	if contentLength < 0 {
		return -1, fmt.Errorf("%w: negative length", errMalformedHeader)
	}

	return contentLength, nil
}
