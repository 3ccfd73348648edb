// Package click2pptx converts a Freeplane mind-map HTML export into a
// one-slide PowerPoint document.
//
// The export is an image plus a client-side image map. Every <area> of
// the map becomes a transparent rectangle laid over the embedded image at
// the same relative position and size, with a click hyperlink to the
// area's target, so the slide behaves like the HTML page it came from.
//
// The pipeline runs in four steps, each usable on its own:
//
//	m, _ := click2pptx.ExtractFile("map.html", click2pptx.ExtractOptions{})
//	img, _ := click2pptx.LoadImage(m.ImageRef, ".")
//	doc, _ := click2pptx.BuildDocument(img, m.Regions, click2pptx.BuildOptions{})
//	_ = doc.Save("map.pptx")
//
// Converter wires them together with configuration, default file
// discovery and atomic output.
package click2pptx
