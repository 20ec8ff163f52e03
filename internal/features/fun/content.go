// Package fun реализует развлекательные команды: шутки, подколы, мемы
// и шуточные измерители. Контент берётся из внешних API, при их недоступности
// используются встроенные списки.
package fun

// Встроенные шутки на случай недоступности API.
var fallbackJokes = []Joke{
	{Setup: "Why do programmers prefer dark mode?", Punchline: "Because light attracts bugs."},
	{Setup: "Why did the scarecrow win an award?", Punchline: "He was outstanding in his field."},
	{Setup: "What do you call a fish without eyes?", Punchline: "A fsh."},
	{Setup: "Why don't scientists trust atoms?", Punchline: "Because they make up everything."},
	{Setup: "What did the ocean say to the beach?", Punchline: "Nothing, it just waved."},
	{Setup: "Why did the bicycle fall over?", Punchline: "Because it was two tired."},
	{Setup: "What do you call cheese that isn't yours?", Punchline: "Nacho cheese."},
	{Setup: "Why can't you give Elsa a balloon?", Punchline: "Because she will let it go."},
}

// Подколы. Подставляется имя цели.
var roasts = []string{
	"%s, you're the reason the gene pool needs a lifeguard.",
	"%s, I'd agree with you but then we'd both be wrong.",
	"%s, you bring everyone so much joy... when you leave the room.",
	"%s, your secrets are safe with me. I never even listen when you talk.",
	"%s, you're proof that evolution can go in reverse.",
	"%s, somewhere out there is a tree producing oxygen for you. You owe it an apology.",
	"%s, I'm not saying you're dumb, but you'd trip over a wireless network.",
	"%s, you're like a cloud. When you disappear, it's a beautiful day.",
}

// Запасные мемы. Прямые ссылки на картинки.
var fallbackMemes = []Meme{
	{Title: "This is fine.", URL: "https://i.imgur.com/c4jt321.png"},
	{Title: "Distracted boyfriend", URL: "https://i.imgur.com/XlAkm6P.jpeg"},
	{Title: "Surprised Pikachu", URL: "https://i.imgur.com/zXlKbNQ.jpeg"},
	{Title: "Galaxy brain", URL: "https://i.imgur.com/0f4zvPn.jpeg"},
}
