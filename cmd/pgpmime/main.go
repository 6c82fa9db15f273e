// Command pgpmime signs, verifies, encrypts and decrypts MIME parts on
// the command line. It exists for manual testing against other OpenPGP
// mail implementations.
package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/emersion/go-message"

	pgpmime "github.com/sealpost/pgpmime-go"
	"github.com/sealpost/pgpmime-go/detect"
)

func main() {
	if len(os.Args) < 2 {
		fatal("usage: pgpmime <command> [args]\n\ncommands:\n" +
			"  keys <keyring>\n" +
			"  sign <secret-keyring> <signer-email> <part-file>\n" +
			"  verify <keyring> <signed-file>\n" +
			"  encrypt <keyring> <part-file> <recipient-email>...\n" +
			"  decrypt <secret-keyring> <encrypted-file>\n" +
			"  detect <file>")
	}

	switch os.Args[1] {
	case "keys":
		listKeys(args(1))
	case "sign":
		sign(args(3))
	case "verify":
		verify(args(2))
	case "encrypt":
		encrypt(argsAtLeast(3))
	case "decrypt":
		decrypt(args(2))
	case "detect":
		detectFile(args(1))
	default:
		fatal("unknown command %q", os.Args[1])
	}
}

func listKeys(argv []string) {
	ctx := loadContext(argv[0], false)
	for key := range ctx.Keys().PublicKeys(nil) {
		kind := "pub"
		if key.HasPrivate {
			kind = "sec"
		}
		fmt.Printf("%s %s %v sign=%v encrypt=%v\n", kind, key.Fingerprint, key.Emails, key.CanSign, key.CanEncrypt)
	}
}

func sign(argv []string) {
	ctx := loadContext(argv[0], true)
	signer, err := ctx.Keys().SigningKey(pgpmime.Addr("", argv[1]))
	if err != nil {
		fatal("resolve signer: %v", err)
	}
	signed, err := pgpmime.SignPart(ctx, signer, pgpmime.DigestDefault, loadPart(argv[2]))
	if err != nil {
		fatal("sign: %v", err)
	}
	writePart(signed)
}

func verify(argv []string) {
	ctx := loadContext(argv[0], false)
	sigs, _, err := pgpmime.VerifyPart(ctx, loadPart(argv[1]))
	if err != nil {
		fatal("verify: %v", err)
	}
	for _, sig := range sigs {
		fmt.Printf("%s %s %v", sig.Status, sig.KeyID, sig.Emails)
		if sig.Err != nil {
			fmt.Printf(" (%v)", sig.Err)
		}
		fmt.Println()
	}
	if !sigs.AllValid() {
		os.Exit(1)
	}
}

func encrypt(argv []string) {
	ctx := loadContext(argv[0], false)
	addrs := make([]pgpmime.Matcher, 0, len(argv)-2)
	for _, email := range argv[2:] {
		addrs = append(addrs, pgpmime.Addr("", email))
	}
	keys, err := ctx.Keys().LookupPublicKeys(addrs...)
	if err != nil {
		fatal("resolve recipients: %v", err)
	}
	encrypted, err := pgpmime.EncryptPart(ctx, pgpmime.CipherDefault, keys, loadPart(argv[1]))
	if err != nil {
		fatal("encrypt: %v", err)
	}
	writePart(encrypted)
}

func decrypt(argv []string) {
	ctx := loadContext(argv[0], true)
	body, sigs, err := pgpmime.DecryptPart(ctx, loadPart(argv[1]))
	if err != nil {
		fatal("decrypt: %v", err)
	}
	for _, sig := range sigs {
		fmt.Fprintf(os.Stderr, "signature %s %s %v\n", sig.Status, sig.KeyID, sig.Emails)
	}
	writePart(body)
}

func detectFile(argv []string) {
	data, err := os.ReadFile(argv[0])
	if err != nil {
		fatal("read %s: %v", argv[0], err)
	}
	d := detect.New()
	d.Write(data)
	fmt.Printf("%s begin=%d end=%d\n", d.Type(), d.BeginOffset(), d.EndOffset())
}

func loadContext(keyringPath string, secret bool) *pgpmime.Context {
	f, err := os.Open(keyringPath)
	if err != nil {
		fatal("open keyring: %v", err)
	}
	defer f.Close()

	ctx := pgpmime.NewContext()
	if secret {
		_, err = ctx.Keys().ImportSecret(f)
	} else {
		_, err = ctx.Keys().Import(f)
	}
	if err != nil {
		fatal("import keyring: %v", err)
	}
	return ctx
}

func loadPart(path string) *message.Entity {
	data, err := os.ReadFile(path)
	if err != nil {
		fatal("read %s: %v", path, err)
	}
	e, err := message.Read(bytes.NewReader(data))
	if err != nil {
		fatal("parse %s: %v", path, err)
	}
	return e
}

func writePart(e *message.Entity) {
	if err := e.WriteTo(os.Stdout); err != nil {
		fatal("write part: %v", err)
	}
}

func args(n int) []string {
	if len(os.Args) != n+2 {
		fatal("command %q takes %d argument(s)", os.Args[1], n)
	}
	return os.Args[2:]
}

func argsAtLeast(n int) []string {
	if len(os.Args) < n+2 {
		fatal("command %q takes at least %d argument(s)", os.Args[1], n)
	}
	return os.Args[2:]
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
