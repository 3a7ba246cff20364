package webscript

const Version = `1.0.0`
const Slogan = `Drive a web browser with plain text, one command per line.`
