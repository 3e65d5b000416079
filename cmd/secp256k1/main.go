// Command secp256k1 runs the engine operations from the command line.  Every
// value is passed and printed as hex.
//
//	secp256k1 [-log-level level] <command> [flags]
//
// Commands: pubkey, sign, verify, schnorr-sign, schnorr-verify, ecdh, tweak,
// decompress, randomize.
package main

import (
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ModChain/secp256k1engine/engine"
	"github.com/ModChain/secp256k1engine/internal/log"
)

var errFailed = errors.New("operation failed")

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	defaultLevel := os.Getenv("SECP256K1_LOG_LEVEL")
	if defaultLevel == "" {
		defaultLevel = log.LogLevelError
	}

	global := flag.NewFlagSet("secp256k1", flag.ContinueOnError)
	global.SetOutput(stderr)
	logLevel := global.String("log-level", defaultLevel, "Log level (debug, info, warn, error, disabled)")
	global.Usage = func() {
		fmt.Fprintf(stderr, "Usage: secp256k1 [-log-level level] <command> [flags]\n\n")
		fmt.Fprintf(stderr, "Commands: pubkey, sign, verify, schnorr-sign, schnorr-verify, ecdh, tweak, decompress, randomize\n\n")
		global.PrintDefaults()
	}
	if err := global.Parse(args); err != nil {
		return err
	}
	log.Init(*logLevel, "stderr", nil)

	if global.NArg() == 0 {
		global.Usage()
		return errors.New("missing command")
	}

	cmd, cmdArgs := global.Arg(0), global.Args()[1:]
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		sec        = fs.String("sec", "", "Secret key, 32 bytes hex")
		pub        = fs.String("pub", "", "Public key, 33 or 65 bytes hex")
		data       = fs.String("data", "", "Message digest, 32 bytes hex")
		sig        = fs.String("sig", "", "Signature hex (DER for ECDSA, 64 bytes for Schnorr)")
		tweak      = fs.String("tweak", "", "Tweak, 32 bytes hex")
		op         = fs.String("op", "add", "Tweak operation (add or mul)")
		seed       = fs.String("seed", "", "Randomization seed, 32 bytes hex")
		compressed = fs.Bool("compressed", true, "Output compressed public keys")
	)
	if err := fs.Parse(cmdArgs); err != nil {
		return err
	}

	decode := func(name, value string) ([]byte, error) {
		if value == "" {
			return nil, fmt.Errorf("-%s is required", name)
		}
		b, err := hex.DecodeString(strings.TrimPrefix(value, "0x"))
		if err != nil {
			return nil, fmt.Errorf("invalid -%s: %w", name, err)
		}
		return b, nil
	}

	e := engine.Default()
	log.Debugw("running command", "command", cmd, "compressed", *compressed)

	var out []byte
	switch cmd {
	case "pubkey":
		s, err := decode("sec", *sec)
		if err != nil {
			return err
		}
		out = e.ComputePubkey(s, *compressed)

	case "sign", "schnorr-sign":
		s, err := decode("sec", *sec)
		if err != nil {
			return err
		}
		d, err := decode("data", *data)
		if err != nil {
			return err
		}
		if cmd == "sign" {
			out = e.Sign(d, s)
		} else {
			out = e.SchnorrSign(d, s)
		}

	case "verify", "schnorr-verify":
		d, err := decode("data", *data)
		if err != nil {
			return err
		}
		sg, err := decode("sig", *sig)
		if err != nil {
			return err
		}
		p, err := decode("pub", *pub)
		if err != nil {
			return err
		}
		var ok bool
		if cmd == "verify" {
			ok = e.Verify(d, sg, p)
		} else {
			ok = e.SchnorrVerify(d, sg, p)
		}
		log.Infow("verification done", "command", cmd, "valid", ok)
		fmt.Fprintln(stdout, ok)
		return nil

	case "ecdh":
		s, err := decode("sec", *sec)
		if err != nil {
			return err
		}
		p, err := decode("pub", *pub)
		if err != nil {
			return err
		}
		out = e.CreateECDHSecret(s, p)

	case "tweak":
		t, err := decode("tweak", *tweak)
		if err != nil {
			return err
		}
		if *op != "add" && *op != "mul" {
			return fmt.Errorf("invalid -op %q", *op)
		}
		switch {
		case *sec != "":
			s, err := decode("sec", *sec)
			if err != nil {
				return err
			}
			if *op == "add" {
				out = e.PrivKeyTweakAdd(s, t)
			} else {
				out = e.PrivKeyTweakMul(s, t)
			}
		case *pub != "":
			p, err := decode("pub", *pub)
			if err != nil {
				return err
			}
			if *op == "add" {
				out = e.PubKeyTweakAdd(p, t, *compressed)
			} else {
				out = e.PubKeyTweakMul(p, t, *compressed)
			}
		default:
			return errors.New("one of -sec or -pub is required")
		}

	case "decompress":
		p, err := decode("pub", *pub)
		if err != nil {
			return err
		}
		out = e.Decompress(p)

	case "randomize":
		s, err := decode("seed", *seed)
		if err != nil {
			return err
		}
		ok := e.Randomize(s)
		fmt.Fprintln(stdout, ok)
		if !ok {
			return errFailed
		}
		return nil

	default:
		global.Usage()
		return fmt.Errorf("unknown command %q", cmd)
	}

	if len(out) == 0 {
		log.Debugw("empty result", "command", cmd)
		return errFailed
	}
	fmt.Fprintln(stdout, hex.EncodeToString(out))
	return nil
}
