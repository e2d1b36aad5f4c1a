package lsp

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/pacer/pascheck/internal/pascal"
)

// requestCounter tracks the number of each request type.
type requestCounter struct {
	Initialize   int
	Initialized  int
	Shutdown     int
	TextDocument struct {
		DidClose       int
		DidOpen        int
		DidChange      int
		DocumentSymbol int
	}
	Other int
}

// Server answers one message at a time. Each opened or changed document is
// compiled from scratch and its diagnostics are published right away.
type Server struct {
	Name    string
	Version string
	// Options configures every compilation; listing and trace are ignored.
	Options pascal.Options

	out         io.Writer
	logger      *slog.Logger
	rootURI     string
	initialized bool
	exiting     bool
	counter     requestCounter
	results     map[string]*pascal.Result
}

func NewServer(name, version string, out io.Writer, opts pascal.Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	opts.Listing = nil
	opts.Trace = nil

	return &Server{
		Name:    name,
		Version: version,
		Options: opts,
		out:     out,
		logger:  logger,
		results: make(map[string]*pascal.Result),
	}
}

// Serve reads framed messages from in until the client sends exit or the
// input ends.
func (s *Server) Serve(in io.Reader) error {
	scanner := ReceiveInput(in)

	s.logger.Info("starting lsp server",
		slog.String("server_name", s.Name),
		slog.String("server_version", s.Version),
	)
	defer func() {
		s.logger.Info("shutting down lsp server", s.groupLogging())
	}()

	for scanner.Scan() {
		done, err := s.handle(scanner.Bytes())
		if err != nil {
			return err
		}

		if done {
			return nil
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading lsp input: %w", err)
	}

	return nil
}

type envelope struct {
	JsonRpc string `json:"jsonrpc"`
	Id      *ID    `json:"id"`
	Method  string `json:"method"`
}

// handle processes one message. It reports done once exit is received; the
// error is only about writing to the client.
func (s *Server) handle(data []byte) (done bool, err error) {
	var request envelope
	if err := json.Unmarshal(data, &request); err != nil {
		s.logger.Warn("dropping malformed message", slog.String("error", err.Error()))
		return false, nil
	}

	if s.exiting {
		if request.Method == MethodExit {
			return true, nil
		}

		if request.Id != nil {
			return false, s.replyError(request.Id, ErrorInvalidRequest, "illegal request while server shutting down")
		}

		return false, nil
	}

	s.logger.Debug("request "+request.Method, s.groupLogging())

	if !s.initialized && request.Method != MethodInitialize && request.Method != MethodExit {
		if request.Id != nil {
			return false, s.replyError(request.Id, ErrorServerNotInited, "server not initialized")
		}

		return false, nil
	}

	switch request.Method {
	case MethodInitialize:
		s.counter.Initialize++

		response, root, err := ProcessInitializeRequest(data, s.Name, s.Version)
		if err != nil {
			return false, s.replyError(request.Id, ErrorInvalidParams, err.Error())
		}

		s.rootURI = root
		s.initialized = true

		return false, s.send(response)

	case MethodInitialized:
		s.counter.Initialized++
		s.logger.Info("received 'initialized' notification", slog.String("root_uri", s.rootURI))

	case MethodShutdown:
		s.counter.Shutdown++
		s.exiting = true

		response, err := ProcessShutdownRequest(request.Id)
		if err != nil {
			return false, err
		}

		return false, s.send(response)

	case MethodExit:
		return true, nil

	case MethodDidOpen:
		s.counter.TextDocument.DidOpen++

		uri, version, text, err := ProcessDidOpenTextDocumentNotification(data)
		if err != nil {
			s.logger.Warn("invalid didOpen", slog.String("error", err.Error()))
			return false, nil
		}

		return false, s.compile(uri, version, text)

	case MethodDidChange:
		s.counter.TextDocument.DidChange++

		uri, version, text, err := ProcessDidChangeTextDocumentNotification(data)
		if err != nil {
			s.logger.Warn("invalid didChange", slog.String("error", err.Error()))
			return false, nil
		}

		return false, s.compile(uri, version, text)

	case MethodDidClose:
		s.counter.TextDocument.DidClose++

		uri, err := ProcessDidCloseTextDocumentNotification(data)
		if err != nil {
			s.logger.Warn("invalid didClose", slog.String("error", err.Error()))
			return false, nil
		}

		delete(s.results, uri)

		// clear what the client still shows for the document
		return false, s.publish(uri, 0, nil)

	case MethodDocumentSymbol:
		s.counter.TextDocument.DocumentSymbol++

		response, err := ProcessDocumentSymbolRequest(data, s.results)
		if err != nil {
			return false, s.replyError(request.Id, ErrorInvalidParams, err.Error())
		}

		return false, s.send(response)

	default:
		s.counter.Other++

		if request.Id != nil {
			return false, s.replyError(request.Id, ErrorMethodNotFound, "method not supported: "+request.Method)
		}
	}

	return false, nil
}

func (s *Server) compile(uri string, version int, text string) error {
	opts := s.Options
	opts.Logger = s.logger.With(slog.String("uri", uri))

	result, err := pascal.CompileString(text, opts)
	if err != nil {
		s.logger.Warn("compilation failed", slog.String("uri", uri), slog.String("error", err.Error()))
		return nil
	}

	s.results[uri] = result

	return s.publish(uri, version, result)
}

func (s *Server) publish(uri string, version int, result *pascal.Result) error {
	var notification []byte
	var err error

	if result == nil {
		notification, err = PublishDiagnosticsNotification(uri, version, nil)
	} else {
		notification, err = PublishDiagnosticsNotification(uri, version, result.Diagnostics)
	}

	if err != nil {
		return err
	}

	return s.send(notification)
}

func (s *Server) replyError(id *ID, code int, message string) error {
	response, err := ProcessErrorResponse(id, code, message)
	if err != nil {
		return err
	}

	return s.send(response)
}

func (s *Server) send(response []byte) error {
	if _, err := s.out.Write(Encode(response)); err != nil {
		return fmt.Errorf("writing to lsp client: %w", err)
	}

	return nil
}

// groupLogging returns a structured logging group with server state.
func (s *Server) groupLogging() slog.Attr {
	return slog.Group("server",
		slog.String("root_uri", s.rootURI),
		slog.Int("open_files", len(s.results)),
		slog.Any("request_counter", s.counter),
	)
}
