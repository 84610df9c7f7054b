//go:build windows

package notify

import (
	"fmt"
	"os/exec"
	"strings"
)

// windowsSender implements Sender for Windows using PowerShell toasts
type windowsSender struct {
	visualAvailable bool
}

func newWindowsSender() Sender {
	return &windowsSender{visualAvailable: toolAvailable("powershell")}
}

func newDarwinSender() Sender {
	return &noopSender{}
}

func newLinuxSender() Sender {
	return &noopSender{}
}

// SendVisual sends a toast notification using PowerShell
func (s *windowsSender) SendVisual(n Notification) error {
	if !s.visualAvailable {
		return nil
	}

	script := fmt.Sprintf(`
[Windows.UI.Notifications.ToastNotificationManager, Windows.UI.Notifications, ContentType = WindowsRuntime] | Out-Null
[Windows.Data.Xml.Dom.XmlDocument, Windows.Data.Xml.Dom.XmlDocument, ContentType = WindowsRuntime] | Out-Null
$template = [Windows.UI.Notifications.ToastNotificationManager]::GetTemplateContent([Windows.UI.Notifications.ToastTemplateType]::ToastText02)
$textNodes = $template.GetElementsByTagName('text')
$textNodes.Item(0).AppendChild($template.CreateTextNode('%s')) | Out-Null
$textNodes.Item(1).AppendChild($template.CreateTextNode('%s')) | Out-Null
$toast = [Windows.UI.Notifications.ToastNotification]::new($template)
[Windows.UI.Notifications.ToastNotificationManager]::CreateToastNotifier('%s').Show($toast)
`, escapeForPowerShell(n.Title), escapeForPowerShell(n.Message), appName)

	cmd := exec.Command("powershell", "-ExecutionPolicy", "Bypass", "-NoProfile", "-Command", script)
	return cmd.Run()
}

func (s *windowsSender) VisualAvailable() bool {
	return s.visualAvailable
}

var powerShellEscaper = strings.NewReplacer("'", "''", "`", "``", "$", "`$")

// escapeForPowerShell escapes special characters for single-quoted PowerShell strings
func escapeForPowerShell(s string) string {
	return powerShellEscaper.Replace(s)
}
