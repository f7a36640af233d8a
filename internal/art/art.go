// Package art holds the ASCII frames used by the full-screen win and
// defeat sequences and the menu banner. Frames are cycled discretely on
// scheduler ticks, no interpolation.
package art

// Banner is the menu masthead.
const Banner = `
 __   ___
 \ \ / (_)_ __  __ _ ______ ___
  \ V /| | '  \/ _' |_ / -_)___|
   \_/ |_|_|_|_\__,_/__\___|
`

// FireworkFrames are cycled during the win celebration.
var FireworkFrames = []string{
	`
        .
       .:.
        '
`,
	`
      \ . /
     - .:. -
      / ' \
`,
	`
    \  \ /  /
   --  *:*  --
    /  / \  \
`,
	`
   *  .   .  *
     *     *
   .    *    .
     *     *
   *  .   .  *
`,
	`
   .         .
        .
   .         .
`,
}

// DefeatArt is the lose screen centerpiece.
const DefeatArt = `
      _____
     /     \
    | () () |
     \  ^  /
      |||||
      |||||

   C A U G H T
`

// WinCaption sits under the firework frames.
const WinCaption = "LEVEL COMPLETE"

// DefeatCaption sits under the defeat art.
const DefeatCaption = "The spies were watching. Returning to the archive..."
