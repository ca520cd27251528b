/*
Package carve is an interactive seam carving editor. It narrows an image one
column at a time by removing connected, minimum-cost vertical seams, and keeps
every edit reversible.

The image is held by a Grid, a four-connected graph of pixels in which a seam
can be taken out or put back by rewriting a single link per row. A History
sequences highlight, delete and undo operations on top of it, and a Processor
turns it into an editing session driven by single-letter operations.

The package comes with a command line interface. To check the supported commands type:

	$ carve --help

In case you wish to integrate the API in a self constructed environment here is a simple example:

	package main

	import (
		"context"
		"fmt"

		"github.com/pixelseam/carve"
	)

	func main() {
		p := &carve.Processor{}
		if err := p.LoadFile(context.Background(), "input.png"); err != nil {
			fmt.Printf("Error loading image: %s", err.Error())
			return
		}
		for _, op := range []carve.Op{carve.OpHighlightEnergy, carve.OpDelete} {
			if err := p.Apply(op); err != nil {
				fmt.Printf("Error carving image: %s", err.Error())
				return
			}
		}
		if err := p.SaveFile("output.png"); err != nil {
			fmt.Printf("Error saving image: %s", err.Error())
		}
	}
*/
package carve
