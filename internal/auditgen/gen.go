// Package auditgen writes synthetic auditd logs for exercising the normalizer.
package auditgen

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/brianvoe/gofakeit/v7"
	"gopkg.in/yaml.v3"

	"github.com/vaibhaw-/AuditNorm/internal/auditnorm/logger"
)

// GenConfig describes the log to generate.
type GenConfig struct {
	Seed   int64  `yaml:"seed"`
	Events int    `yaml:"events"`
	Output string `yaml:"output"`
	Node   string `yaml:"node"`
	Start  int64  `yaml:"start"`
	Mix    Mix    `yaml:"mix"`
}

// Mix weights the kinds of event produced. All zero means an even split.
type Mix struct {
	FileAccess int `yaml:"file_access"`
	Exec       int `yaml:"exec"`
	Connect    int `yaml:"connect"`
	Login      int `yaml:"login"`
	Daemon     int `yaml:"daemon"`
}

func (m Mix) total() int {
	return m.FileAccess + m.Exec + m.Connect + m.Login + m.Daemon
}

// ReadConfig parses a YAML generator config.
func ReadConfig(path string) (GenConfig, error) {
	var cfg GenConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// defaultSeed replaces an unset seed; gofakeit treats 0 as "seed randomly".
const defaultSeed = 1

// Generate writes cfg.Events events to w. Output is deterministic for a given
// seed, and an unset (zero) seed behaves as seed 1.
func Generate(w io.Writer, cfg GenConfig) error {
	if cfg.Events <= 0 {
		return fmt.Errorf("events must be positive, got %d", cfg.Events)
	}
	if cfg.Seed == 0 {
		cfg.Seed = defaultSeed
	}
	if cfg.Start == 0 {
		cfg.Start = 1700000000
	}
	if cfg.Mix.total() <= 0 {
		cfg.Mix = Mix{FileAccess: 1, Exec: 1, Connect: 1, Login: 1, Daemon: 1}
	}

	gofakeit.Seed(cfg.Seed)

	g := &generator{w: bufio.NewWriter(w), cfg: cfg}
	for i := 0; i < cfg.Events; i++ {
		g.serial++
		g.msec += gofakeit.Number(1, 900)
		switch g.pick() {
		case "file_access":
			g.fileAccess()
		case "exec":
			g.exec()
		case "connect":
			g.connect()
		case "login":
			g.login()
		default:
			g.daemon()
		}
	}
	if err := g.w.Flush(); err != nil {
		return err
	}
	return g.err
}

// Run generates the log described by the config file at path.
func Run(path string) error {
	log := logger.L()
	cfg, err := ReadConfig(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if cfg.Output == "" {
		return fmt.Errorf("output is required")
	}
	f, err := os.Create(cfg.Output)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer f.Close()

	if err := Generate(f, cfg); err != nil {
		return err
	}
	log.Infow("generation complete", "events", cfg.Events, "output", cfg.Output, "seed", cfg.Seed)
	return nil
}

type generator struct {
	w      *bufio.Writer
	cfg    GenConfig
	serial int
	msec   int
	err    error
}

func (g *generator) pick() string {
	m := g.cfg.Mix
	n := gofakeit.Number(1, m.total())
	switch {
	case n <= m.FileAccess:
		return "file_access"
	case n <= m.FileAccess+m.Exec:
		return "exec"
	case n <= m.FileAccess+m.Exec+m.Connect:
		return "connect"
	case n <= m.FileAccess+m.Exec+m.Connect+m.Login:
		return "login"
	default:
		return "daemon"
	}
}

func (g *generator) emit(typ, body string) {
	if g.err != nil {
		return
	}
	var b strings.Builder
	if g.cfg.Node != "" {
		fmt.Fprintf(&b, "node=%s ", g.cfg.Node)
	}
	sec := g.cfg.Start + int64(g.msec/1000)
	fmt.Fprintf(&b, "type=%s msg=audit(%d.%03d:%d): %s\n", typ, sec, g.msec%1000, g.serial, body)
	_, g.err = g.w.WriteString(b.String())
}

// process is the identity shared by the records of one event.
type process struct {
	pid, ppid, ses, auid, uid int
	comm, exe                 string
}

func newProcess() process {
	uid := gofakeit.RandomInt([]int{0, 1000, 1001, 33})
	cmd := gofakeit.RandomString([]string{"cat", "vim", "curl", "python3", "bash", "sshd"})
	return process{
		pid:  gofakeit.Number(300, 65000),
		ppid: gofakeit.Number(1, 300),
		ses:  gofakeit.Number(1, 40),
		auid: uid,
		uid:  uid,
		comm: cmd,
		exe:  "/usr/bin/" + cmd,
	}
}

func (g *generator) syscall(p process, num int, key string, items int) {
	success, exit := "yes", gofakeit.Number(0, 8)
	if gofakeit.Number(1, 10) == 1 {
		success, exit = "no", -13
	}
	g.emit("SYSCALL", fmt.Sprintf(
		`arch=c000003e syscall=%d success=%s exit=%d a0=%x a1=%x a2=%x a3=0 items=%d ppid=%d pid=%d auid=%d uid=%d gid=%d euid=%d suid=%d fsuid=%d egid=%d sgid=%d fsgid=%d tty=pts%d ses=%d comm="%s" exe="%s" key="%s"`,
		num, success, exit, gofakeit.Uint32(), gofakeit.Uint32(), gofakeit.Number(0, 0777), items,
		p.ppid, p.pid, p.auid, p.uid, p.uid, p.uid, p.uid, p.uid, p.uid, p.uid, p.uid,
		gofakeit.Number(0, 4), p.ses, p.comm, p.exe, key))
}

func (g *generator) cwd() {
	g.emit("CWD", fmt.Sprintf(`cwd="/home/%s"`, gofakeit.Username()))
}

func (g *generator) path(item int, name string) {
	g.emit("PATH", fmt.Sprintf(
		`item=%d name="%s" inode=%d dev=fd:00 mode=0100644 ouid=0 ogid=0 rdev=00:00 nametype=NORMAL`,
		item, name, gofakeit.Number(1000, 9999999)))
}

func (g *generator) proctitle(argv ...string) {
	g.emit("PROCTITLE", "proctitle="+strings.ToUpper(hex.EncodeToString([]byte(strings.Join(argv, "\x00")))))
}

func (g *generator) eoe() {
	g.emit("EOE", "")
}

func (g *generator) fileAccess() {
	p := newProcess()
	name := gofakeit.RandomString([]string{"/etc/passwd", "/etc/shadow", "/var/log/syslog", "/tmp/" + gofakeit.Word() + "." + gofakeit.FileExtension()})
	g.syscall(p, 257, "file_access", 1)
	g.cwd()
	g.path(0, name)
	g.proctitle(p.comm, name)
	g.eoe()
}

func (g *generator) exec() {
	p := newProcess()
	argv := []string{p.comm, "-" + gofakeit.Letter(), gofakeit.Word()}
	g.syscall(p, 59, "exec", 2)
	args := make([]string, len(argv))
	for i, a := range argv {
		args[i] = fmt.Sprintf(`a%d="%s"`, i, a)
	}
	g.emit("EXECVE", fmt.Sprintf("argc=%d %s", len(argv), strings.Join(args, " ")))
	g.cwd()
	g.path(0, p.exe)
	g.path(1, "/lib64/ld-linux-x86-64.so.2")
	g.eoe()
}

func (g *generator) connect() {
	p := newProcess()
	g.syscall(p, 42, "network", 0)
	g.emit("SOCKADDR", fmt.Sprintf("saddr=02000050%08X0000000000000000", gofakeit.Uint32()))
	g.proctitle(p.comm, gofakeit.DomainName())
	g.eoe()
}

func (g *generator) login() {
	p := newProcess()
	res := "success"
	if gofakeit.Number(1, 5) == 1 {
		res = "failed"
	}
	typ := gofakeit.RandomString([]string{"USER_LOGIN", "USER_AUTH", "USER_START", "USER_END"})
	g.emit(typ, fmt.Sprintf(
		`pid=%d uid=0 auid=%d ses=%d msg='op=login acct="%s" exe="/usr/sbin/sshd" hostname=? addr=%s terminal=/dev/pts/%d res=%s'`,
		p.pid, p.auid, p.ses, gofakeit.Username(), gofakeit.IPv4Address(), gofakeit.Number(0, 4), res))
}

func (g *generator) daemon() {
	typ := gofakeit.RandomString([]string{"DAEMON_START", "DAEMON_END", "SERVICE_START", "SERVICE_STOP"})
	g.emit(typ, fmt.Sprintf(
		`op=%s ver=3.1.2 format=enriched kernel=6.%d.0 auid=4294967295 pid=%d uid=0 ses=4294967295 res=success`,
		strings.ToLower(typ), gofakeit.Number(1, 12), gofakeit.Number(300, 65000)))
}
