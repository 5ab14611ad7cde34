// Command codec encodes, decodes and sizes data with the Base64, Base32 and Base16 alphabets.
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	codec "github.com/05nelsonm/encoding-sub001"
)

var Version = "dev"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "codec:", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:                   "codec",
		Usage:                  "Streaming Base64 / Base32 / Base16 encoder and decoder",
		Version:                Version,
		UseShortOptionHandling: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "alphabet",
				Aliases: []string{"a"},
				Usage:   "base64, base64url, base32, base32hex, crockford or base16",
				Value:   "base64",
			},
			&cli.StringFlag{
				Name:  "profile",
				Usage: "TOML file with default settings",
			},
			&cli.StringFlag{
				Name:  "whitespace",
				Usage: "Whitespace policy when decoding: skip, pass or reject",
				Value: "skip",
			},
			&cli.UintFlag{
				Name:    "wrap",
				Aliases: []string{"w"},
				Usage:   "Insert a line break every N encoded characters (0=off)",
			},
			&cli.BoolFlag{
				Name:  "no-pad",
				Usage: "Omit padding when encoding",
			},
			&cli.BoolFlag{
				Name:  "lowercase",
				Usage: "Encode letters in lowercase (base32, base16)",
			},
			&cli.BoolFlag{
				Name:  "constant-time",
				Usage: "Use constant-time table lookups when encoding",
			},
			&cli.StringFlag{
				Name:  "check-symbol",
				Usage: "Crockford check symbol: one of * ~ $ = U u",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Log engine decisions to stderr",
			},
		},
		Before: func(c *cli.Context) error {
			if !c.Bool("verbose") {
				return nil
			}
			logger, err := zap.NewDevelopment()
			if err != nil {
				return err
			}
			codec.SetLogger(logger)
			return nil
		},
		After: func(c *cli.Context) error {
			_ = codec.Logger().Sync()
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "encode",
				Aliases:   []string{"e"},
				Usage:     "Encode FILE (or stdin) to stdout",
				ArgsUsage: "[FILE]",
				Flags:     []cli.Flag{streamFlag},
				Action:    encodeAction,
			},
			{
				Name:      "decode",
				Aliases:   []string{"d"},
				Usage:     "Decode FILE (or stdin) to stdout",
				ArgsUsage: "[FILE]",
				Flags:     []cli.Flag{streamFlag},
				Action:    decodeAction,
			},
			{
				Name:      "size",
				Usage:     "Print the encoded size of N bytes and the maximum decoded size of N characters",
				ArgsUsage: "N",
				Action:    sizeAction,
			},
		},
	}
}

var streamFlag = &cli.BoolFlag{
	Name:    "stream",
	Aliases: []string{"s"},
	Usage:   "Stream through io.Reader/io.Writer adapters instead of reading the input up front",
}

func openInput(c *cli.Context) (io.ReadCloser, error) {
	switch c.NArg() {
	case 0:
		return io.NopCloser(c.App.Reader), nil
	case 1:
		if c.Args().First() == "-" {
			return io.NopCloser(c.App.Reader), nil
		}
		return os.Open(c.Args().First())
	}
	return nil, fmt.Errorf("expected at most one FILE, got %d", c.NArg())
}

func prepare(c *cli.Context) (codec.Encoding, io.ReadCloser, *codec.Writer, error) {
	s, err := loadSettings(c)
	if err != nil {
		return nil, nil, nil, err
	}
	enc, err := s.encoding()
	if err != nil {
		return nil, nil, nil, err
	}
	in, err := openInput(c)
	if err != nil {
		return nil, nil, nil, err
	}
	out, err := codec.NewWriter(c.App.Writer)
	if err != nil {
		in.Close()
		return nil, nil, nil, err
	}
	codec.Logger().Debug("codec ready", zap.String("config", codec.FormatConfig(enc.Name(), enc.Configuration())))
	return enc, in, out, nil
}

func encodeAction(c *cli.Context) error {
	enc, in, out, err := prepare(c)
	if err != nil {
		return err
	}
	defer in.Close()

	if c.Bool("stream") {
		w, err := codec.NewEncoder(enc, out)
		if err != nil {
			return err
		}
		if _, err := io.Copy(w, in); err != nil {
			_ = w.Close()
			return err
		}
		if err := w.Close(); err != nil {
			return err
		}
	} else {
		data, err := io.ReadAll(in)
		if err != nil {
			return err
		}
		if _, err := codec.EncodeBufferedTo(enc, codec.NewInput(data), out); err != nil {
			return err
		}
	}
	out.Output('\n')
	return out.Flush()
}

func decodeAction(c *cli.Context) error {
	enc, in, out, err := prepare(c)
	if err != nil {
		return err
	}
	defer in.Close()

	if c.Bool("stream") {
		r, err := codec.NewDecoder(enc, in)
		if err != nil {
			return err
		}
		if _, err := io.Copy(out, r); err != nil {
			return err
		}
	} else {
		data, err := io.ReadAll(in)
		if err != nil {
			return err
		}
		if _, err := codec.DecodeBufferedTo(enc, codec.NewInput(data), out); err != nil {
			return err
		}
	}
	return out.Flush()
}

func sizeAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected N")
	}
	n, err := strconv.ParseInt(c.Args().First(), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid N: %w", err)
	}
	s, err := loadSettings(c)
	if err != nil {
		return err
	}
	enc, err := s.encoding()
	if err != nil {
		return err
	}
	cfg := enc.Configuration()

	encoded, err := codec.EncodeOutMaxSize(cfg, n, cfg.Base().LineBreakInterval())
	if err != nil {
		return err
	}
	decoded, err := codec.DecodeOutMaxSize(cfg, n)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(c.App.Writer, "%s\nencode: %d\ndecode: %d\n", enc.Name(), encoded, decoded)
	return err
}
