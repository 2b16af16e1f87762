package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/wippyai/tachyon-bridge/tachyon"
)

// session runs commands against one connected client.
type session struct {
	client  *tachyon.Client
	kv      *tachyon.KV
	kvStore string
	out     io.Writer
}

type command struct {
	name   string
	params []string
	// rest means the last parameter takes the remainder of the line.
	rest bool
	help string
	run  func(s *session, args []string) error
}

var commands = []command{
	{name: "touch", params: []string{"path"}, help: "create an empty file", run: (*session).touch},
	{name: "mkdir", params: []string{"path"}, help: "create a directory and its parents", run: (*session).mkdir},
	{name: "put", params: []string{"path", "text"}, rest: true, help: "create a file holding text", run: (*session).put},
	{name: "cat", params: []string{"path"}, help: "print a file", run: (*session).cat},
	{name: "stat", params: []string{"path"}, help: "show file metadata", run: (*session).stat},
	{name: "rm", params: []string{"path"}, help: "remove a file; rm -r removes a directory tree", run: (*session).rm},
	{name: "kv-set", params: []string{"key", "value"}, rest: true, help: "store a value", run: (*session).kvSet},
	{name: "kv-get", params: []string{"key"}, help: "print a stored value", run: (*session).kvGet},
	{name: "join", params: []string{"base", "path"}, help: "join a master URI and a path", run: (*session).join},
}

func lookupCommand(name string) (command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

func (c command) usage() string {
	var b strings.Builder
	b.WriteString(c.name)
	if c.name == "rm" {
		b.WriteString(" [-r]")
	}
	for _, p := range c.params {
		b.WriteString(" <" + p + ">")
	}
	return b.String()
}

func newSession(ctx context.Context, master, kvStore string, out io.Writer) (*session, error) {
	client, err := tachyon.Connect(ctx, master)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", master, err)
	}
	return &session{client: client, kvStore: kvStore, out: out}, nil
}

func (s *session) Close() error {
	if s.kv != nil {
		s.kv.Close()
	}
	return s.client.Close()
}

// exec runs one command line.
func (s *session) exec(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	return s.execArgs(fields[0], fields[1:])
}

func (s *session) execArgs(name string, args []string) error {
	c, ok := lookupCommand(name)
	if !ok {
		return fmt.Errorf("unknown command %q", name)
	}
	if name == "rm" && len(args) == 2 && args[0] == "-r" {
		return c.run(s, args)
	}
	if c.rest && len(args) > len(c.params) {
		n := len(c.params) - 1
		args = append(args[:n:n], strings.Join(args[n:], " "))
	}
	if len(args) != len(c.params) {
		return fmt.Errorf("usage: %s", c.usage())
	}
	return c.run(s, args)
}

func (s *session) touch(args []string) error {
	return s.write(args[0], nil)
}

func (s *session) put(args []string) error {
	return s.write(args[0], []byte(args[1]))
}

func (s *session) write(path string, data []byte) error {
	id, err := s.client.CreateFile(path)
	if err != nil {
		return err
	}
	f, err := s.client.GetFileByID(id)
	if err != nil {
		return err
	}
	defer f.Close()

	out, err := f.OutStream(tachyon.CacheThrough)
	if err != nil {
		return err
	}
	if _, err := out.Write(data); err != nil {
		out.Cancel()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "%d\n", id)
	return nil
}

func (s *session) mkdir(args []string) error {
	created, err := s.client.Mkdir(args[0])
	if err != nil {
		return err
	}
	if !created {
		fmt.Fprintf(s.out, "%s exists\n", args[0])
	}
	return nil
}

func (s *session) cat(args []string) error {
	f, err := s.client.GetFile(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	in, err := f.InStream(tachyon.NoCache)
	if err != nil {
		return err
	}
	defer in.Close()

	_, err = io.Copy(s.out, in)
	return err
}

func (s *session) stat(args []string) error {
	f, err := s.client.GetFile(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	id, err := s.client.GetFileID(args[0])
	if err != nil {
		return err
	}
	path, err := f.Path()
	if err != nil {
		return err
	}
	length, err := f.Length()
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "id:        %d\npath:      %s\nlength:    %d\n", id, path, length)

	flags := []struct {
		name  string
		check func() (bool, error)
	}{
		{"directory", f.IsDirectory},
		{"complete", f.IsComplete},
		{"in-memory", f.IsInMemory},
		{"pinned", f.NeedPin},
	}
	for _, fl := range flags {
		v, err := fl.check()
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "%-10s %t\n", fl.name+":", v)
	}
	return nil
}

func (s *session) rm(args []string) error {
	recursive := false
	if len(args) == 2 {
		recursive = true
		args = args[1:]
	}
	deleted, err := s.client.DeletePath(args[0], recursive)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("%s: no such file or directory", args[0])
	}
	return nil
}

func (s *session) store() (*tachyon.KV, error) {
	if s.kv != nil {
		return s.kv, nil
	}
	kv, err := tachyon.NewKV(s.client, tachyon.NoCache, tachyon.MustCache, 0, s.kvStore)
	if err != nil {
		return nil, err
	}
	if ok, err := kv.Init(); err != nil || !ok {
		kv.Close()
		if err == nil {
			err = fmt.Errorf("kv store %q cannot be initialised", s.kvStore)
		}
		return nil, err
	}
	s.kv = kv
	return kv, nil
}

func (s *session) kvSet(args []string) error {
	kv, err := s.store()
	if err != nil {
		return err
	}
	return kv.Set([]byte(args[0]), []byte(args[1]))
}

func (s *session) kvGet(args []string) error {
	kv, err := s.store()
	if err != nil {
		return err
	}
	buf := make([]byte, 256)
	n, err := kv.Get([]byte(args[0]), buf)
	if err != nil {
		return err
	}
	if n > len(buf) {
		buf = make([]byte, n)
		if n, err = kv.Get([]byte(args[0]), buf); err != nil {
			return err
		}
	}
	fmt.Fprintf(s.out, "%s\n", buf[:n])
	return nil
}

func (s *session) join(args []string) error {
	p, ok := tachyon.FullPath(args[0], args[1])
	if !ok {
		return fmt.Errorf("join: empty base or path")
	}
	fmt.Fprintln(s.out, p)
	return nil
}
