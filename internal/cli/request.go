package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/alexbotov/engine-go/pkg/engine"
	"github.com/spf13/cobra"
)

type requestOptions struct {
	query   []string
	data    string
	include bool
}

func newRequestCmd(method string, ro *rootOptions) *cobra.Command {
	opts := &requestOptions{}
	cmd := &cobra.Command{
		Use:   strings.ToLower(method) + " <path>",
		Short: fmt.Sprintf("Send a %s request to a path relative to the API URL", method),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRequest(cmd, ro, opts, method, args[0])
		},
	}
	fs := cmd.Flags()
	fs.StringArrayVarP(&opts.query, "query", "q", nil, "query parameter key=value, repeat a key to send a list")
	fs.BoolVarP(&opts.include, "include", "i", false, "print the response status line")
	if method == http.MethodPost || method == http.MethodPut || method == http.MethodPatch {
		fs.StringVarP(&opts.data, "data", "d", "", "JSON body, @file to read a file or - for stdin")
	}
	return cmd
}

func runRequest(cmd *cobra.Command, ro *rootOptions, opts *requestOptions, method, path string) error {
	query, err := parseQuery(opts.query)
	if err != nil {
		return err
	}
	req := engine.Request{URL: path, Query: query, Options: ro.requestOptions()}
	if opts.data != "" {
		body, err := readData(opts.data, cmd.InOrStdin())
		if err != nil {
			return err
		}
		req.Data = body
	}

	client, err := ro.newClient(cmd)
	if err != nil {
		return err
	}
	resp, err := client.Do(cmd.Context(), method, req)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.include {
		fmt.Fprintf(out, "%d %s\n", resp.StatusCode, http.StatusText(resp.StatusCode))
	}
	return writeBody(out, resp.Body)
}

// parseQuery turns key=value pairs into a Query. Repeated keys become lists
func parseQuery(pairs []string) (engine.Query, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	values := make(map[string][]string)
	var order []string
	for _, pair := range pairs {
		k, v, ok := strings.Cut(pair, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid query %q, expected key=value", pair)
		}
		if _, seen := values[k]; !seen {
			order = append(order, k)
		}
		values[k] = append(values[k], v)
	}

	q := make(engine.Query, len(values))
	for _, k := range order {
		if vs := values[k]; len(vs) == 1 {
			q[k] = vs[0]
		} else {
			q[k] = vs
		}
	}
	return q, nil
}

func readData(arg string, stdin io.Reader) (json.RawMessage, error) {
	var data []byte
	var err error
	switch {
	case arg == "-":
		data, err = io.ReadAll(stdin)
	case strings.HasPrefix(arg, "@"):
		data, err = os.ReadFile(strings.TrimPrefix(arg, "@"))
	default:
		data = []byte(arg)
	}
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	data = bytes.TrimSpace(data)
	if !json.Valid(data) {
		return nil, errors.New("request body is not valid JSON")
	}
	return json.RawMessage(data), nil
}

// writeBody pretty prints JSON bodies and copies anything else unchanged
func writeBody(w io.Writer, body []byte) error {
	if len(body) == 0 {
		return nil
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, body, "", "  "); err != nil {
		_, err = w.Write(body)
		return err
	}
	buf.WriteByte('\n')
	_, err := buf.WriteTo(w)
	return err
}
