package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/aligator/fatmod"
	"github.com/spf13/afero"
)

const invalidArguments = "Invalid arguments. Please enter -h for help"

func printHelp() {
	name := os.Args[0]
	fmt.Printf("USAGE: %s <DISK> OPERATION\n\n", name)
	fmt.Printf("Operations:\n")
	fmt.Printf("  -l                          List the files of the root directory\n")
	fmt.Printf("  -c NAME                     Create an empty file\n")
	fmt.Printf("  -w NAME OFFSET LENGTH BYTE  Write LENGTH copies of BYTE at OFFSET\n")
	fmt.Printf("  -r -b NAME                  Read a file as a hex dump\n")
	fmt.Printf("  -r -a NAME                  Read a file as raw characters\n")
	fmt.Printf("  -d NAME                     Delete a file\n\n")
	fmt.Printf("%s -h prints this help.\n", name)
}

// kindMessages maps the volume error kinds to the single line the tool
// prints for them.
var kindMessages = []struct {
	kind    error
	message string
}{
	{fatmod.ErrAlreadyExists, "File already exists!"},
	{fatmod.ErrNotFound, "File not found!"},
	{fatmod.ErrInvalidName, "Invalid file name!"},
	{fatmod.ErrInvalidOffset, "Offset is past the end of the file!"},
	{fatmod.ErrDirectoryFull, "Root directory is full!"},
	{fatmod.ErrNoSpace, "No free cluster left on the volume!"},
}

func printError(err error) {
	for _, m := range kindMessages {
		if errors.Is(err, m.kind) {
			fmt.Println(m.message)
			return
		}
	}
	fmt.Println(err)
}

// parseUnsigned parses a non-negative decimal number not larger than max.
func parseUnsigned(input string, max int64) (int64, bool) {
	value, err := strconv.ParseInt(input, 10, 64)
	if err != nil || value < 0 || value > max {
		return 0, false
	}
	return value, true
}

func main() {
	args := os.Args[1:]

	if len(args) == 1 && args[0] == "-h" {
		printHelp()
		return
	}
	if len(args) < 2 {
		fmt.Println(invalidArguments)
		return
	}

	volume, err := fatmod.Open(afero.NewOsFs(), args[0], fatmod.NewLogger(os.Stdout))
	if err != nil {
		if errors.Is(err, fatmod.ErrOpen) {
			fmt.Println("could not open disk image")
			os.Exit(1)
		}
		printError(err)
		return
	}
	defer volume.Close()

	switch args[1] {
	case "-l":
		if len(args) != 2 {
			fmt.Println(invalidArguments)
			return
		}
		if err := volume.List(os.Stdout); err != nil {
			printError(err)
		}

	case "-c":
		if len(args) != 3 {
			fmt.Println(invalidArguments)
			return
		}
		if err := volume.Create(args[2]); err != nil {
			printError(err)
			return
		}
		fmt.Println("File created successfully!")

	case "-w":
		if len(args) != 6 {
			fmt.Println(invalidArguments)
			return
		}
		offset, okOffset := parseUnsigned(args[3], 1<<32)
		length, okLength := parseUnsigned(args[4], 1<<32)
		fill, okFill := parseUnsigned(args[5], 255)
		if !okOffset || !okLength || !okFill {
			fmt.Println(invalidArguments)
			return
		}
		if err := volume.Write(args[2], offset, length, byte(fill)); err != nil {
			printError(err)
			return
		}
		fmt.Println("Bytes written to the file successfully!")

	case "-r":
		if len(args) != 4 {
			fmt.Println(invalidArguments)
			return
		}
		switch args[2] {
		case "-b":
			err = volume.ReadBinary(os.Stdout, args[3])
		case "-a":
			err = volume.ReadASCII(os.Stdout, args[3])
		default:
			fmt.Println(invalidArguments)
			return
		}
		if err != nil {
			printError(err)
			return
		}
		fmt.Println("Succesfully read!")

	case "-d":
		if len(args) != 3 {
			fmt.Println(invalidArguments)
			return
		}
		if err := volume.Delete(args[2]); err != nil {
			printError(err)
			return
		}
		fmt.Println("File deleted successfully!")

	default:
		fmt.Println(invalidArguments)
	}
}
