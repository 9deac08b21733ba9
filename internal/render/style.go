package render

// Stylesheet is served at /static/style.css.
const Stylesheet = `:root {
  --bg: #1d2b53;
  --card: #ffffff;
  --accent: #4caf50;
  --error: #ff6b6b;
}
* { box-sizing: border-box; }
body { margin: 0; font-family: system-ui, sans-serif; background: var(--bg); color: #222; }
.header { display: flex; justify-content: space-between; align-items: center; padding: 12px 24px; background: #fff; }
.logo { font-weight: 700; font-size: 1.4rem; color: #e3350d; text-decoration: none; }
.search-form { display: flex; gap: 8px; }
.search-input, #pokemonIdInput { padding: 8px 12px; border: 1px solid #ccc; border-radius: 6px; }
.search-btn, .nav-button { padding: 8px 16px; border: 0; border-radius: 6px; background: var(--accent); color: #fff; cursor: pointer; text-decoration: none; }
.nav-button[disabled] { background: #999; cursor: not-allowed; }
.container { max-width: 1100px; margin: 0 auto; padding: 24px; }
.nav-buttons { display: flex; justify-content: space-between; margin-bottom: 16px; }
.pokemon-card { background: var(--card); border-radius: 12px; padding: 16px; margin: 8px; }
.pokemon-card button { all: unset; cursor: pointer; display: block; }
.pokemon-img { width: 120px; height: 120px; }
.pokemon-types .type { display: inline-block; padding: 2px 10px; border-radius: 12px; background: #eee; margin-right: 4px; }
.evolution-stages { display: flex; align-items: center; gap: 10px; }
.evo-stage { text-align: center; }
.evo-stage .pokemon-img { width: 60px; height: 60px; }
.arrow { font-size: 2rem; }
.no-evolution { color: #666; font-style: italic; }
.error-message { color: var(--error); font-weight: 600; }
.generations { display: grid; grid-template-columns: repeat(auto-fill, minmax(200px, 1fr)); gap: 12px; margin-top: 24px; }
.generation-card { background: var(--card); border-radius: 12px; padding: 12px; color: inherit; text-decoration: none; }
#generationHeader, .loading-message, .empty-result { color: #fff; text-align: center; }
#generationPokemon { display: flex; flex-wrap: wrap; }
.loading-message:not(:last-child) { display: none; }
.error-page { color: #fff; text-align: center; }
`
