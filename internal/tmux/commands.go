package tmux

import "strings"

func RailsCmd(cmd string) string  { return "bundle exec rails " + cmd }
func K8sCmd(cmd string) string    { return "kubectl " + cmd }
func TfCmd(cmd string) string     { return "terraform " + cmd }
func GitCmd(cmd string) string    { return "git " + cmd }
func NpmCmd(cmd string) string    { return "npm run " + cmd }
func YarnCmd(cmd string) string   { return "yarn " + cmd }
func CargoCmd(cmd string) string  { return "cargo " + cmd }
func GoCmd(cmd string) string     { return "go " + cmd }
func BundleCmd(cmd string) string { return "bundle exec " + cmd }

// DockerCmd opens a shell in service, or brings the stack up when service is empty.
func DockerCmd(service string) string {
	if service == "" {
		return "docker-compose up"
	}
	return "docker-compose exec " + service + " bash"
}

// AnsibleCmd runs <playbook>.yml with extraArgs.
func AnsibleCmd(playbook, extraArgs string) string {
	if playbook == "" {
		return "ansible-playbook"
	}
	return "ansible-playbook " + playbook + ".yml " + extraArgs
}

func MakeCmd(target string) string {
	if target == "" {
		return "make"
	}
	return "make " + target
}

// EnvCmd prefixes cmd with <ENV>_ENV=<env>.
func EnvCmd(cmd, env string) string {
	if env == "" {
		return cmd
	}
	return strings.ToUpper(env) + "_ENV=" + env + " " + cmd
}
