package server

// chatPage is the static chat UI served at the root path.
const chatPage = `<!DOCTYPE html>
<html><head><title>Workshop Sidekick</title></head>
<body>
<h1>AWS S3 Security Workshop Sidekick</h1>
<p><a href="/health">Check Health</a></p>
<div id="chat" style="height:400px;overflow-y:scroll;border:1px solid #ccc;padding:10px;margin:10px 0;background:#f9f9f9;"></div>
<input type="text" id="message" style="width:70%;padding:10px;" placeholder="Ask about S3 security, labs, or troubleshooting...">
<button onclick="send()" style="padding:10px 20px;">Send</button>
<script>
let sessionId = "";
function send() {
    const msg = document.getElementById('message').value;
    if (!msg) return;

    document.getElementById('chat').innerHTML += '<p><b>You:</b> ' + msg + '</p>';
    document.getElementById('message').value = '';

    fetch('/chat', {
        method: 'POST',
        headers: {'Content-Type': 'application/json'},
        body: JSON.stringify({message: msg, session_id: sessionId})
    })
    .then(r => r.json())
    .then(data => {
        sessionId = data.session_id;
        document.getElementById('chat').innerHTML += '<p><b>Workshop Sidekick:</b> ' + data.response + '</p>';
        document.getElementById('chat').scrollTop = document.getElementById('chat').scrollHeight;
    })
    .catch(e => {
        document.getElementById('chat').innerHTML += '<p><b>Error:</b> ' + e + '</p>';
    });
}
document.getElementById('message').addEventListener('keypress', function(e) {
    if (e.key === 'Enter') send();
});
</script>
</body></html>`
