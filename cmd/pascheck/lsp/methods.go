// Package lsp implements the language server of pascheck: JSON-RPC framing,
// message types, and a server publishing the diagnostics of every open
// program.
package lsp

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/pacer/pascheck/internal/pascal"
	"github.com/pacer/pascheck/internal/pascal/diag"
	"github.com/pacer/pascheck/internal/pascal/source"
	"github.com/pacer/pascheck/internal/pascal/symbols"
)

// ID represents a JSON-RPC request ID that can be either a string or number.
type ID int

func (id *ID) UnmarshalJSON(data []byte) error {
	length := len(data)
	if length >= 2 && data[0] == '"' && data[length-1] == '"' {
		data = data[1 : length-1]
	}

	number, err := strconv.Atoi(string(data))
	if err != nil {
		return errors.New("'ID' expected either a string or an integer")
	}

	*id = ID(number)

	return nil
}

func (id ID) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Itoa(int(id))), nil
}

// RequestMessage represents a JSON-RPC request. Id is nil for notifications.
type RequestMessage[T any] struct {
	JsonRpc string `json:"jsonrpc"`
	Id      *ID    `json:"id,omitempty"`
	Method  string `json:"method"`
	Params  T      `json:"params"`
}

// ResponseMessage represents a JSON-RPC response.
type ResponseMessage[T any] struct {
	JsonRpc string         `json:"jsonrpc"`
	Id      *ID            `json:"id"`
	Result  T              `json:"result"`
	Error   *ResponseError `json:"error,omitempty"`
}

// ResponseError represents a JSON-RPC error.
type ResponseError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NotificationMessage represents a JSON-RPC notification (no response expected).
type NotificationMessage[T any] struct {
	JsonRpc string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  T      `json:"params"`
}

// InitializeParams holds parameters for the initialize request.
type InitializeParams struct {
	ProcessId  int `json:"processId"`
	ClientInfo struct {
		Name    string `json:"name"`
		Version string `json:"version"`
	} `json:"clientInfo"`
	RootUri string `json:"rootUri"`
}

// ServerCapabilities describes the capabilities this server supports.
type ServerCapabilities struct {
	TextDocumentSync       int  `json:"textDocumentSync"`
	DocumentSymbolProvider bool `json:"documentSymbolProvider"`
}

// InitializeResult is the response to the initialize request.
type InitializeResult struct {
	Capabilities ServerCapabilities `json:"capabilities"`
	ServerInfo   struct {
		Name    string `json:"name"`
		Version string `json:"version"`
	} `json:"serverInfo"`
}

// PublishDiagnosticsParams holds parameters for publishing diagnostics.
type PublishDiagnosticsParams struct {
	Uri         string       `json:"uri"`
	Version     int          `json:"version,omitempty"`
	Diagnostics []Diagnostic `json:"diagnostics"`
}

// Diagnostic represents a diagnostic message.
type Diagnostic struct {
	Range    Range  `json:"range"`
	Severity int    `json:"severity"`
	Code     int    `json:"code"`
	Source   string `json:"source"`
	Message  string `json:"message"`
}

// Position represents a 0-based position in a text document.
type Position struct {
	Line      uint `json:"line"`
	Character uint `json:"character"`
}

// Range represents a range in a text document.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// TextDocumentItem represents a text document.
type TextDocumentItem struct {
	Uri        string `json:"uri"`
	Version    int    `json:"version"`
	LanguageId string `json:"languageId"`
	Text       string `json:"text"`
}

// TextDocumentIdentifier identifies a text document.
type TextDocumentIdentifier struct {
	Uri string `json:"uri"`
}

type DidOpenTextDocumentParams struct {
	TextDocument TextDocumentItem `json:"textDocument"`
}

// TextDocumentContentChangeEvent carries the full new text; the server
// only announces full synchronization.
type TextDocumentContentChangeEvent struct {
	Text string `json:"text"`
}

type DidChangeTextDocumentParams struct {
	TextDocument   TextDocumentItem                 `json:"textDocument"`
	ContentChanges []TextDocumentContentChangeEvent `json:"contentChanges"`
}

type DidCloseTextDocumentParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
}

type DocumentSymbolParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
}

// SymbolInformation is a flat document symbol.
type SymbolInformation struct {
	Name     string   `json:"name"`
	Kind     int      `json:"kind"`
	Detail   string   `json:"detail,omitempty"`
	Location Location `json:"location"`
}

// Location represents a location in a text document.
type Location struct {
	Uri   string `json:"uri"`
	Range Range  `json:"range"`
}

// intToUint safely converts int to uint, returning 0 for negative values.
func intToUint(v int) uint {
	if v < 0 {
		return 0
	}

	return uint(v) //nolint:gosec // bounds checked above
}

// ConvertPositionToLspRange converts a 1-based source position spanning
// width columns to a 0-based LSP range.
func ConvertPositionToLspRange(pos source.Position, width int) Range {
	if pos.IsEmpty() {
		return Range{}
	}

	start := Position{
		Line:      intToUint(pos.Line - 1),
		Character: intToUint(pos.Column - 1),
	}

	end := start
	end.Character += intToUint(max(width, 1))

	return Range{Start: start, End: end}
}

// ConvertDiagnostics turns the diagnostics of a run into LSP diagnostics.
// The result is never nil so that it encodes as an empty list.
func ConvertDiagnostics(diags []diag.Diagnostic) []Diagnostic {
	converted := make([]Diagnostic, 0, len(diags))

	for _, d := range diags {
		converted = append(converted, Diagnostic{
			Range:    ConvertPositionToLspRange(d.Pos, d.Width),
			Severity: SeverityError,
			Code:     int(d.Code),
			Source:   DiagnosticSource,
			Message:  fmt.Sprintf("ошибка код %d: %s", d.Code, d.Code.Description()),
		})
	}

	return converted
}

// ConvertSymbols lists the declarations of the program scope of result.
func ConvertSymbols(uri string, result *pascal.Result) []SymbolInformation {
	if result == nil || result.Program == nil {
		return []SymbolInformation{}
	}

	all := result.Program.Identifiers.All()
	converted := make([]SymbolInformation, 0, len(all))

	for _, id := range all {
		kind := SymbolKindVariable
		switch id.Class {
		case symbols.ClassType:
			kind = SymbolKindClass
		case symbols.ClassConst:
			kind = SymbolKindConstant
		}

		converted = append(converted, SymbolInformation{
			Name:   id.Name(),
			Kind:   kind,
			Detail: id.Class.String() + " " + symbols.TypeString(id.Type),
			Location: Location{
				Uri:   uri,
				Range: ConvertPositionToLspRange(id.Symbol.Pos, len([]rune(id.Name()))),
			},
		})
	}

	return converted
}

func marshalResponse[T any](id *ID, result T, respErr *ResponseError) ([]byte, error) {
	response := ResponseMessage[T]{
		JsonRpc: JSONRPCVersion,
		Id:      id,
		Result:  result,
		Error:   respErr,
	}

	data, err := json.Marshal(response)
	if err != nil {
		return nil, fmt.Errorf("marshalling response: %w", err)
	}

	return data, nil
}

// ProcessInitializeRequest handles the initialize request.
func ProcessInitializeRequest(data []byte, lspName, lspVersion string) (response []byte, root string, err error) {
	var req RequestMessage[InitializeParams]
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, "", fmt.Errorf("unmarshalling 'initialize': %w", err)
	}

	var result InitializeResult
	result.Capabilities = ServerCapabilities{
		TextDocumentSync:       TextDocumentSyncFull,
		DocumentSymbolProvider: true,
	}
	result.ServerInfo.Name = lspName
	result.ServerInfo.Version = lspVersion

	response, err = marshalResponse(req.Id, result, nil)

	return response, req.Params.RootUri, err
}

// ProcessShutdownRequest handles the shutdown request.
func ProcessShutdownRequest(requestId *ID) ([]byte, error) {
	return marshalResponse[any](requestId, nil, nil)
}

// ProcessErrorResponse answers a request with a JSON-RPC error.
func ProcessErrorResponse(requestId *ID, code int, message string) ([]byte, error) {
	return marshalResponse[any](requestId, nil, &ResponseError{Code: code, Message: message})
}

// ProcessDidOpenTextDocumentNotification handles textDocument/didOpen.
func ProcessDidOpenTextDocumentNotification(data []byte) (uri string, version int, text string, err error) {
	var request RequestMessage[DidOpenTextDocumentParams]
	if err := json.Unmarshal(data, &request); err != nil {
		return "", 0, "", fmt.Errorf("unmarshalling 'textDocument/didOpen': %w", err)
	}

	doc := request.Params.TextDocument

	return doc.Uri, doc.Version, doc.Text, nil
}

// ProcessDidChangeTextDocumentNotification handles textDocument/didChange.
// Only the last change is kept: with full synchronization it holds the whole
// document.
func ProcessDidChangeTextDocumentNotification(data []byte) (uri string, version int, text string, err error) {
	var request RequestMessage[DidChangeTextDocumentParams]
	if err := json.Unmarshal(data, &request); err != nil {
		return "", 0, "", fmt.Errorf("unmarshalling 'textDocument/didChange': %w", err)
	}

	changes := request.Params.ContentChanges
	if len(changes) == 0 {
		return "", 0, "", errors.New("'contentChanges' field is empty")
	}

	doc := request.Params.TextDocument

	return doc.Uri, doc.Version, changes[len(changes)-1].Text, nil
}

// ProcessDidCloseTextDocumentNotification handles textDocument/didClose.
func ProcessDidCloseTextDocumentNotification(data []byte) (uri string, err error) {
	var request RequestMessage[DidCloseTextDocumentParams]
	if err := json.Unmarshal(data, &request); err != nil {
		return "", fmt.Errorf("unmarshalling 'textDocument/didClose': %w", err)
	}

	return request.Params.TextDocument.Uri, nil
}

// ProcessDocumentSymbolRequest handles textDocument/documentSymbol.
func ProcessDocumentSymbolRequest(data []byte, results map[string]*pascal.Result) ([]byte, error) {
	var request RequestMessage[DocumentSymbolParams]
	if err := json.Unmarshal(data, &request); err != nil {
		return nil, fmt.Errorf("unmarshalling 'textDocument/documentSymbol': %w", err)
	}

	uri := request.Params.TextDocument.Uri

	result, ok := results[uri]
	if !ok {
		return ProcessErrorResponse(request.Id, ErrorInvalidParams, "document is not open: "+uri)
	}

	return marshalResponse(request.Id, ConvertSymbols(uri, result), nil)
}

// PublishDiagnosticsNotification builds the notification carrying diags for uri.
func PublishDiagnosticsNotification(uri string, version int, diags []diag.Diagnostic) ([]byte, error) {
	notification := NotificationMessage[PublishDiagnosticsParams]{
		JsonRpc: JSONRPCVersion,
		Method:  MethodPublishDiagnostics,
		Params: PublishDiagnosticsParams{
			Uri:         uri,
			Version:     version,
			Diagnostics: ConvertDiagnostics(diags),
		},
	}

	data, err := json.Marshal(notification)
	if err != nil {
		return nil, fmt.Errorf("marshalling diagnostics of %s: %w", uri, err)
	}

	return data, nil
}
