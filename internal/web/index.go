package web

// indexHTML is the dashboard page. It subscribes to the trial SSE stream and
// renders balance trajectories with Chart.js plus aggregate counters.
const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <title>Martingale Simulator</title>
  <script src="https://cdn.jsdelivr.net/npm/chart.js"></script>
  <style>
    :root {
      --bg:#ffffff;
      --ink:#111111;
      --ink-mid:#4d4d4d;
      --ink-soft:#9c9c9c;
      --panel:#f6f6f6;
      --ruin:#c0392b;
      --safe:#27ae60;
    }
    * { box-sizing:border-box; }
    body {
      margin:0;
      min-height:100vh;
      display:flex;
      align-items:center;
      justify-content:center;
      padding:2rem;
      background:var(--bg);
      color:var(--ink);
      font-family:'Space Mono','JetBrains Mono',monospace;
    }
    #app {
      width:min(1300px, 96vw);
      background:var(--panel);
      border:3px solid var(--ink);
      padding:2rem;
      box-shadow:12px 12px 0 rgba(0,0,0,.15);
      display:flex;
      flex-direction:column;
      gap:1.5rem;
    }
    header { display:flex; justify-content:space-between; align-items:flex-start; gap:1rem; }
    h1 { font-size:1rem; text-transform:uppercase; letter-spacing:.2em; margin:0; }
    .status {
      font-size:.65rem;
      text-transform:uppercase;
      letter-spacing:.1em;
      border:2px solid var(--ink);
      padding:.4rem .9rem;
      background:#ffffff;
      box-shadow:4px 4px 0 rgba(0,0,0,.15);
    }
    .cards {
      display:grid;
      grid-template-columns:repeat(auto-fit, minmax(160px, 1fr));
      gap:1rem;
    }
    .card {
      border:3px solid var(--ink);
      background:#fff;
      padding:1rem;
      box-shadow:6px 6px 0 rgba(0,0,0,.12);
    }
    .card .label { font-size:.6rem; text-transform:uppercase; letter-spacing:.12em; color:var(--ink-mid); }
    .card .value { font-size:1.4rem; font-weight:700; margin-top:.3rem; }
    .card .value.ruin { color:var(--ruin); }
    .card .value.safe { color:var(--safe); }
    .chart-box {
      border:3px solid var(--ink);
      background:#fff;
      padding:1rem;
      box-shadow:8px 8px 0 rgba(0,0,0,.15);
    }
    .hint { font-size:.65rem; color:var(--ink-soft); }
  </style>
</head>
<body>
<div id="app">
  <header>
    <h1>Martingale Simulator</h1>
    <div class="status" id="status">loading…</div>
  </header>
  <div class="cards">
    <div class="card"><div class="label">Trials</div><div class="value" id="trials">0</div></div>
    <div class="card"><div class="label">Ruined</div><div class="value ruin" id="ruined">0</div></div>
    <div class="card"><div class="label">Survived</div><div class="value safe" id="survived">0</div></div>
    <div class="card"><div class="label">Ruin probability</div><div class="value" id="ruinprob">–</div></div>
    <div class="card"><div class="label">Mean final balance</div><div class="value" id="meanbal">–</div></div>
    <div class="card"><div class="label">Longest trial</div><div class="value" id="maxspins">0</div></div>
  </div>
  <div class="chart-box">
    <canvas id="chart" height="110"></canvas>
    <div class="hint">balance trajectories of the first trials with recorded history; dashed line marks the initial balance</div>
  </div>
</div>
<script>
const maxPlottedTrials = 40;
const palette = ['#2980b9','#8e44ad','#16a085','#d35400','#2c3e50','#c0392b','#27ae60','#f39c12'];

let trials = 0, ruined = 0, plotted = 0, maxSpins = 0, balanceSum = 0;
let initialBalanceDrawn = false;

const chart = new Chart(document.getElementById('chart'), {
  type: 'line',
  data: { labels: [], datasets: [] },
  options: {
    animation: false,
    responsive: true,
    plugins: { legend: { display: false } },
    scales: {
      x: { title: { display: true, text: 'spin' } },
      y: { title: { display: true, text: 'balance' } }
    }
  }
});

function ensureLabels(n) {
  while (chart.data.labels.length < n) {
    chart.data.labels.push(chart.data.labels.length);
  }
}

function drawInitialBalanceLine(balance) {
  chart.data.datasets.unshift({
    label: 'initial balance',
    data: [],
    borderColor: '#e74c3c',
    borderDash: [6, 6],
    borderWidth: 2,
    pointRadius: 0,
    fill: false,
  });
  chart.initialBalance = balance;
  initialBalanceDrawn = true;
}

function refreshReferenceLine() {
  if (!initialBalanceDrawn) return;
  const line = chart.data.datasets[0];
  while (line.data.length < chart.data.labels.length) {
    line.data.push(chart.initialBalance);
  }
}

function addTrajectory(history, wasRuined) {
  if (plotted >= maxPlottedTrials) return;
  const values = history.map(parseFloat);
  ensureLabels(values.length);
  if (!initialBalanceDrawn) drawInitialBalanceLine(values[0]);
  chart.data.datasets.push({
    data: values,
    borderColor: wasRuined ? 'rgba(192,57,43,0.55)' : palette[plotted % palette.length],
    borderWidth: 1.5,
    pointRadius: 0,
    fill: false,
  });
  plotted++;
}

function onTrial(result) {
  trials++;
  if (result.ruined) ruined++;
  balanceSum += parseFloat(result.final_balance);
  if (result.spins > maxSpins) maxSpins = result.spins;
  if (result.balance_history && result.balance_history.length > 1) {
    addTrajectory(result.balance_history, result.ruined);
  }

  document.getElementById('trials').textContent = trials;
  document.getElementById('ruined').textContent = ruined;
  document.getElementById('survived').textContent = trials - ruined;
  document.getElementById('ruinprob').textContent = (100 * ruined / trials).toFixed(1) + '%';
  document.getElementById('meanbal').textContent = (balanceSum / trials).toFixed(2);
  document.getElementById('maxspins').textContent = maxSpins + ' spins';
}

let pending = [];
let flushTimer = null;
function scheduleFlush() {
  if (flushTimer) return;
  flushTimer = setTimeout(() => {
    flushTimer = null;
    pending.forEach(onTrial);
    pending = [];
    refreshReferenceLine();
    chart.update();
  }, 200);
}

const source = new EventSource('/trials/stream');
source.addEventListener('trial', (e) => {
  document.getElementById('status').textContent = 'streaming';
  pending.push(JSON.parse(e.data));
  scheduleFlush();
});
source.addEventListener('no_data', () => {
  document.getElementById('status').textContent = 'no data yet';
});
source.onerror = () => {
  document.getElementById('status').textContent = 'reconnecting…';
};
</script>
</body>
</html>`
