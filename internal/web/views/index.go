// Package views renders the dungeon viewer page. Components are written
// as plain templ.ComponentFunc values so the page stays a single Go file.
package views

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/halstein/dungeon-forge/internal/protocol"
)

// IndexPage renders the viewer shell with the initial snapshot embedded as
// JSON. The client script draws one pre-formatted layer per grid level and
// re-draws when a regeneration patch arrives on /stream.
func IndexPage(snapshot protocol.Snapshot) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		payload, err := json.Marshal(snapshot)
		if err != nil {
			return fmt.Errorf("marshal snapshot: %w", err)
		}
		if _, err := io.WriteString(w, pageTop); err != nil {
			return err
		}
		// json.Marshal escapes angle brackets, so the payload cannot
		// terminate the script element early.
		if _, err := io.WriteString(w, `<script id="snapshot" type="application/json">`); err != nil {
			return err
		}
		if _, err := w.Write(payload); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `</script>`); err != nil {
			return err
		}
		_, err = io.WriteString(w, pageBottom)
		return err
	})
}

const pageTop = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>dungeon-forge</title>
<style>
body { background: #14161a; color: #cfd3da; font-family: monospace; margin: 1rem 2rem; }
h1 { font-size: 1.1rem; }
.layer { margin-bottom: 1rem; }
.layer h2 { font-size: 0.9rem; color: #8b93a1; margin: 0 0 0.25rem; }
pre { line-height: 1.05; letter-spacing: 0.15em; margin: 0; }
.c-m { color: #e8c264; }
.c-s { color: #6fae6f; }
.c-c { color: #5d9bd4; }
.c-t { color: #c46fae; }
button { font-family: inherit; margin-bottom: 1rem; }
#meta { color: #8b93a1; margin-bottom: 1rem; }
</style>
</head>
<body>
<h1>dungeon-forge</h1>
<button id="regen">Regenerate</button>
<div id="meta"></div>
<div id="layers"></div>
`

const pageBottom = `<script>
const GLYPHS = [".", "M", "S", "#", "^"];
const CLASSES = ["", "c-m", "c-s", "c-c", "c-t"];

function draw(s) {
  document.getElementById("meta").textContent =
    "seed " + s.seed + " | " + s.rooms.length + " rooms | " +
    s.paths.length + " corridors | " + s.regionsCount + " region(s)";
  const layers = document.getElementById("layers");
  layers.textContent = "";
  const cells = atob(s.cells);
  for (let y = 0; y < s.gridHeight; y++) {
    const section = document.createElement("div");
    section.className = "layer";
    const title = document.createElement("h2");
    title.textContent = "level " + y;
    section.appendChild(title);
    const pre = document.createElement("pre");
    for (let z = 0; z < s.gridDepth; z++) {
      for (let x = 0; x < s.gridWidth; x++) {
        const v = cells.charCodeAt((y * s.gridDepth + z) * s.gridWidth + x);
        const span = document.createElement("span");
        span.textContent = GLYPHS[v] || "?";
        if (CLASSES[v]) span.className = CLASSES[v];
        pre.appendChild(span);
      }
      pre.appendChild(document.createTextNode("\n"));
    }
    section.appendChild(pre);
    layers.appendChild(section);
  }
}

draw(JSON.parse(document.getElementById("snapshot").textContent));

const socket = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/stream");
socket.onmessage = (event) => {
  const patch = JSON.parse(event.data);
  if (patch.type === "DungeonRegenerated") {
    draw(patch.payload.snapshot);
  }
};
document.getElementById("regen").onclick = () => {
  socket.send(JSON.stringify({ type: "RequestRegenerate", payload: {} }));
};
</script>
</body>
</html>
`
