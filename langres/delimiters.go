package langres

// baseSentenceDelimiters is the minimum sentence-boundary set required by
// spec.md section 4.1.
var baseSentenceDelimiters = []rune{'.', '!', '?', '。', '！', '？', '।', '۔'}

// baseParagraphDelimiter is the default paragraph boundary.
const baseParagraphDelimiter = "\n\n"
