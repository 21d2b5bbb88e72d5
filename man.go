package docdex

// ManSections is the manual-page section search order, most common
// first. Both the local tree and the remote archive are probed in
// this order.
var ManSections = []string{"1", "8", "6", "5", "4", "3", "2", "7"}

// PriorityCommands are the manual pages indexed on every system,
// whether or not the local man tree is readable.
var PriorityCommands = []string{
	"apt", "apt-get", "dpkg", "snap", "systemctl", "ufw", "ls", "cd", "grep",
	"find", "chmod", "chown", "sudo", "ssh", "scp", "tar", "wget", "curl",
	"docker", "git", "nano", "vim", "cat", "cp", "mv", "rm", "mkdir", "touch",
	"ps", "top", "kill", "df", "du", "free", "netstat", "ip", "ping",
}
