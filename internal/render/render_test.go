package render

import (
	"testing"
	"time"

	"github.com/liliang-cn/jogjachat/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.UnixMilli(1_700_000_000_000)

func TestMarkdown_SanitizesLinksAndImages(t *testing.T) {
	r := New()

	out, err := r.Markdown("[klik](javascript:alert(1)) dan ![x](data:image/png;base64,AAAA) dan [toko](https://toko.id)")
	require.NoError(t, err)

	assert.Contains(t, out, `href="#blocked"`)
	assert.Contains(t, out, `src="#blocked"`)
	assert.Contains(t, out, `href="https://toko.id"`)
	assert.NotContains(t, out, "javascript")
	assert.NotContains(t, out, "data:image")
}

func TestMarkdown_BlocksAutolinks(t *testing.T) {
	r := New()

	out, err := r.Markdown("lihat <vbscript:msgbox> atau <https://toko.id> atau <halo@toko.id>")
	require.NoError(t, err)

	assert.NotContains(t, out, `href="vbscript`)
	assert.Contains(t, out, "vbscript:msgbox")
	assert.Contains(t, out, `href="https://toko.id"`)
	assert.Contains(t, out, `href="mailto:halo@toko.id"`)
}

func TestMarkdown_DropsRawHTML(t *testing.T) {
	r := New()

	out, err := r.Markdown("halo <script>alert(1)</script> <b onclick=\"x()\">tebal</b>")
	require.NoError(t, err)
	assert.NotContains(t, out, "<script")
	assert.NotContains(t, out, "onclick")
}

func TestHTML_Rows(t *testing.T) {
	r := New()

	user := r.HTML(domain.NewUserMessage("**bukan** <i>markdown</i>", t0))
	assert.Equal(t, `<div class="message-row user"><div class="message user">**bukan** &lt;i&gt;markdown&lt;/i&gt;</div></div>`, user)

	bot := r.HTML(domain.NewAssistantMessage("**Bakpia**", t0, false))
	assert.Contains(t, bot, `class="message assistant"`)
	assert.Contains(t, bot, "<strong>Bakpia</strong>")

	failed := r.HTML(domain.NewAssistantMessage(domain.FallbackText, t0, true))
	assert.Contains(t, failed, `class="message assistant error"`)
}

func TestHTML_TypingIndicator(t *testing.T) {
	r := New()

	assert.Contains(t, r.HTML(domain.NewPlaceholder(t0)), TypingIndicator)

	// the literal placeholder token renders as the indicator even without the flag
	literal := domain.NewAssistantMessage(domain.TypingText, t0, false)
	assert.Contains(t, r.HTML(literal), TypingIndicator)
	assert.NotContains(t, r.HTML(literal), domain.TypingText)
}

func TestText_Terminal(t *testing.T) {
	r := New()

	out := r.Text(domain.NewAssistantMessage("## Bakpia\n\nHarga **Rp 25.000**.\n\n- [Pesan](https://toko.id)\n- [Bahaya](javascript:alert(1))\n\n![foto](https://cdn.toko.id/x.png)", t0, false))
	assert.Equal(t, "Bakpia\n\nHarga Rp 25.000.\n\n- Pesan (https://toko.id)\n- Bahaya (#blocked)", out)

	assert.Equal(t, TerminalTypingIndicator, r.Text(domain.NewPlaceholder(t0)))
	assert.Equal(t, "**mentah**", r.Text(domain.NewUserMessage("**mentah**", t0)))
}
