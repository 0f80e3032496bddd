package chat

import (
	"html/template"
	"net/http"
)

type pageData struct {
	Model       string
	OllamaLogo  string
	MinimaxLogo string
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_ = pageTemplate.Execute(w, pageData{
		Model:       s.model,
		OllamaLogo:  s.logos.Ollama,
		MinimaxLogo: s.logos.Minimax,
	})
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Ollama Thinking Chat</title>
<style>
  body { font-family: -apple-system, "Segoe UI", sans-serif; max-width: 760px;
         margin: 0 auto; padding: 1rem; color: #222; }
  .gradient-text { background: linear-gradient(to right, #EC227A, #F77334);
                   -webkit-background-clip: text; -webkit-text-fill-color: transparent;
                   font-weight: bold; display: inline-block; }
  header { text-align: center; margin-bottom: 2rem; }
  header h2 { margin-bottom: 1rem; }
  header img { vertical-align: middle; margin: 0 10px; }
  header h4 { color: #666; margin-top: 0; }
  .msg { margin: 0.75rem 0; padding: 0.6rem 0.9rem; border-radius: 8px; }
  .msg.user { background: #f0f2f6; white-space: pre-wrap; }
  .msg.assistant { background: #fff; border: 1px solid #eee; }
  .msg.assistant .streaming { white-space: pre-wrap; }
  details.thinking { margin-bottom: 0.5rem; color: #555; }
  details.thinking pre { white-space: pre-wrap; font-family: inherit; }
  #status { color: #888; font-style: italic; margin: 0.5rem 0; }
  #error { color: #b00020; margin: 0.5rem 0; }
  form { display: flex; gap: 0.5rem; margin-top: 1rem; }
  #input { flex: 1; padding: 0.6rem; border: 1px solid #ccc; border-radius: 8px; }
  button { padding: 0.6rem 1.2rem; border: 0; border-radius: 8px;
           background: #EC227A; color: white; cursor: pointer; }
  button:disabled { background: #ccc; }
</style>
</head>
<body>
<header>
  <h2>
    <img src="data:image/png;base64,{{.OllamaLogo}}" width="40" alt="Ollama">
    Ollama <span class="gradient-text">{{.Model}}</span> Chat
    <img src="data:image/png;base64,{{.MinimaxLogo}}" width="45" alt="MiniMax">
  </h2>
  <h4>With thinking UI! &#128161;</h4>
</header>
<div id="messages"></div>
<div id="status" hidden></div>
<div id="error" hidden></div>
<form id="form">
  <input id="input" autocomplete="off" placeholder="Type your message here..." autofocus>
  <button id="send" type="submit">Send</button>
</form>
<script>
const messages = document.getElementById("messages");
const status = document.getElementById("status");
const errBox = document.getElementById("error");
const form = document.getElementById("form");
const input = document.getElementById("input");
const send = document.getElementById("send");

let current = null;
let thinkingBuf = "", answerBuf = "";

const proto = location.protocol === "https:" ? "wss://" : "ws://";
const ws = new WebSocket(proto + location.host + "/ws");

function addUser(text) {
  const div = document.createElement("div");
  div.className = "msg user";
  div.textContent = text;
  messages.appendChild(div);
}

function addAssistant(item) {
  const div = document.createElement("div");
  div.className = "msg assistant";
  if (item.thinking_html) {
    const details = document.createElement("details");
    details.className = "thinking";
    details.innerHTML = "<summary>&#129504; Thinking process</summary>" + item.thinking_html;
    div.appendChild(details);
  }
  const body = document.createElement("div");
  body.innerHTML = item.answer_html || "";
  div.appendChild(body);
  messages.appendChild(div);
  return div;
}

function startStreaming() {
  thinkingBuf = ""; answerBuf = "";
  current = document.createElement("div");
  current.className = "msg assistant";
  current.innerHTML = '<div class="streaming"></div>';
  messages.appendChild(current);
}

function renderStreaming() {
  if (!current) return;
  current.querySelector(".streaming").textContent = answerBuf || thinkingBuf;
  window.scrollTo(0, document.body.scrollHeight);
}

function setBusy(busy) {
  send.disabled = busy;
  input.disabled = busy;
  if (!busy) input.focus();
}

ws.onmessage = (raw) => {
  const ev = JSON.parse(raw.data);
  switch (ev.type) {
  case "phase_change":
    if (ev.phase === "thinking") {
      status.hidden = false;
      status.textContent = "💭 Thinking...";
    } else if (ev.phase === "done") {
      status.textContent = "✅ Thinking complete!";
      setTimeout(() => { status.hidden = true; }, 1500);
    }
    break;
  case "thinking_delta":
    thinkingBuf += ev.text;
    renderStreaming();
    break;
  case "text_delta":
    answerBuf += ev.text;
    renderStreaming();
    break;
  case "message_done":
    if (current) { current.remove(); current = null; }
    addAssistant(ev);
    setBusy(false);
    window.scrollTo(0, document.body.scrollHeight);
    break;
  case "error":
    if (current) { current.remove(); current = null; }
    errBox.hidden = false;
    errBox.textContent = ev.message;
    setBusy(false);
    break;
  }
};

ws.onclose = () => {
  errBox.hidden = false;
  errBox.textContent = "Connection closed. Reload the page to start a new session.";
  setBusy(true);
};

form.addEventListener("submit", (e) => {
  e.preventDefault();
  const text = input.value.trim();
  if (!text || send.disabled) return;
  errBox.hidden = true;
  addUser(text);
  input.value = "";
  setBusy(true);
  startStreaming();
  ws.send(JSON.stringify({ type: "message", text: text }));
});
</script>
</body>
</html>
`))
