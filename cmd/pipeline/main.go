package main

import "github.com/nguyentantai21042004/deck-scribe/cmd/pipeline/cmd"

func main() {
	cmd.Execute()
}
